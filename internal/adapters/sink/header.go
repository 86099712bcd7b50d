package sink

import (
	"fmt"
	"strings"

	"github.com/crdietrich/pi-INA219/internal/app/config"
	"github.com/crdietrich/pi-INA219/internal/ports"
)

// BuildHeader assembles the run-metadata block every sink prints once.
// savePath is the resolved CSV path, "" when saving is off.
func BuildHeader(cfg config.Run, savePath string) ports.RunHeader {
	lines := []string{"INA219 Voltage, Power & Energy Measurement"}
	lines = append(lines, fmt.Sprintf("Using I2C address %#x", cfg.Address))
	if savePath != "" {
		lines = append(lines, "Saving to: "+savePath)
	}
	if cfg.SerialEnabled() {
		lines = append(lines, fmt.Sprintf("Correlating with %s at %d baud", cfg.Serial.Port, cfg.Serial.Baud))
	}

	if cfg.Unbounded() {
		lines = append(lines, "Number of samples = infinity")
	} else {
		lines = append(lines, fmt.Sprintf("Number of samples = %d", cfg.Count))
	}
	lines = append(lines, fmt.Sprintf("Sample interval = %g", cfg.Interval))
	lines = append(lines, fmt.Sprintf("Energy units = %s", cfg.Unit))
	if !cfg.Unbounded() && !cfg.SerialEnabled() {
		lines = append(lines, fmt.Sprintf("Energy use over %g seconds", cfg.Interval*float64(cfg.Count)))
	}
	lines = append(lines, strings.Repeat("-", 42))

	return ports.RunHeader{Lines: lines, Labels: Labels(cfg.Unit)}
}
