// Package sink renders samples to the terminal and to the CSV save file.
package sink

import (
	"fmt"

	"github.com/crdietrich/pi-INA219/internal/domain"
)

// Labels is the column-label row shared by every sink, in row order.
// The energy labels carry the run's unit.
func Labels(unit domain.EnergyUnit) []string {
	return []string{
		"unix time (s)",
		"elapsed time (s)",
		"bus voltage (V)",
		"shunt current (A)",
		"power (W)",
		fmt.Sprintf("sample_energy (%s)", unit),
		fmt.Sprintf("total_energy (%s)", unit),
	}
}

// rowFields formats one sample into the shared column order: 3 decimal
// places for the two time fields, 5 for the measurements.
func rowFields(s *domain.Sample) []string {
	return []string{
		fmt.Sprintf("%.3f", s.Timestamp),
		fmt.Sprintf("%.3f", s.Elapsed),
		fmt.Sprintf("%.5f", s.Reading.BusVoltage),
		fmt.Sprintf("%.5f", s.Reading.ShuntCurrent),
		fmt.Sprintf("%.5f", s.Reading.Power),
		fmt.Sprintf("%.5f", s.Energy),
		fmt.Sprintf("%.5f", s.TotalEnergy),
	}
}
