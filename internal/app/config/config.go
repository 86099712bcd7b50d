package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/crdietrich/pi-INA219/internal/domain"
)

// MinInterval is the shortest supported sample interval in seconds. Values
// below it are rejected at configuration time, never at runtime.
const MinInterval = 0.05

// DefaultAddress is the INA219 factory I2C address.
const DefaultAddress = 0x40

// Run is the immutable run configuration. It is built once (yaml file plus
// flag overrides) and passed by value into the sampler.
type Run struct {
	Count    int               `yaml:"count"`    // samples to take; < 1 means unbounded
	Interval float64           `yaml:"interval"` // seconds between timer-paced samples
	Unit     domain.EnergyUnit `yaml:"units"`
	SaveDir  string            `yaml:"save_dir"` // directory for the timestamped CSV, "" disables
	Bus      string            `yaml:"bus"`      // I2C bus name, "" means first available
	Address  int               `yaml:"address"`  // 7-bit I2C address

	Serial SerialConfig `yaml:"serial"`

	GraphMax    float64 `yaml:"graph_max"`    // > 0 enables the bar plot, scaled to this power
	MetricsFile string  `yaml:"metrics_file"` // Prometheus textfile path, "" disables
}

// SerialConfig enables correlation mode: sample cadence follows inbound lines
// from this port instead of the timer.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
	Tx   string `yaml:"tx"` // written to the port before each blocking read
}

// Default returns the flag defaults of the original tool.
func Default() Run {
	return Run{
		Count:    4,
		Interval: 1.0,
		Unit:     domain.Joule,
		Address:  DefaultAddress,
	}
}

// Load reads a yaml config over the defaults. Validation is deferred so the
// caller can layer flag overrides first.
func Load(path string) (Run, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (r Run) Validate() error {
	if r.Interval < MinInterval {
		return fmt.Errorf("sample interval %g seconds too low (minimum %g)", r.Interval, MinInterval)
	}
	if _, err := domain.ParseEnergyUnit(string(r.Unit)); err != nil {
		return err
	}
	if r.Address < 0 || r.Address > 0x7f {
		return fmt.Errorf("I2C address %#x out of 7-bit range", r.Address)
	}
	if r.Serial.Port != "" && r.Serial.Baud <= 0 {
		return fmt.Errorf("serial port %s requires a baud rate", r.Serial.Port)
	}
	if r.Serial.Port == "" && r.Serial.Baud > 0 {
		return fmt.Errorf("baud rate given without a serial port")
	}
	if r.GraphMax < 0 {
		return fmt.Errorf("graph maximum must be positive, got %g", r.GraphMax)
	}
	return nil
}

// Unbounded reports whether the run loops until interrupted.
func (r Run) Unbounded() bool { return r.Count < 1 }

// SerialEnabled reports whether correlation mode drives the cadence.
func (r Run) SerialEnabled() bool { return r.Serial.Port != "" }

// SaveEnabled reports whether a CSV sink is requested.
func (r Run) SaveEnabled() bool { return r.SaveDir != "" }

// GraphEnabled reports whether the terminal bar plot is on.
func (r Run) GraphEnabled() bool { return r.GraphMax > 0 }
