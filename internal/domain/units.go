package domain

import "fmt"

// EnergyUnit selects how instantaneous power is folded into the energy
// columns. Joule and WattHour integrate power over the inter-sample
// interval; Kilowatt is a historical oddity kept for compatibility: it is an
// instantaneous power display (power/1000) that ignores the interval
// entirely, so its running total is a sum of readings, not an integral.
type EnergyUnit string

const (
	Joule    EnergyUnit = "J"
	WattHour EnergyUnit = "Wh"
	Kilowatt EnergyUnit = "kW"
)

// ParseEnergyUnit maps a flag value to a unit.
func ParseEnergyUnit(s string) (EnergyUnit, error) {
	switch EnergyUnit(s) {
	case Joule, WattHour, Kilowatt:
		return EnergyUnit(s), nil
	default:
		return "", fmt.Errorf("unknown unit %q (available: J, Wh, kW)", s)
	}
}

// Integrate converts one power reading (watts) and the seconds elapsed since
// the previous sample into this unit's energy contribution.
func (u EnergyUnit) Integrate(power, deltaT float64) float64 {
	switch u {
	case WattHour:
		return power * deltaT / 3600
	case Kilowatt:
		// No time base: instantaneous display only.
		return power / 1000
	default:
		return power * deltaT
	}
}

// Accumulates reports whether the running total is a meaningful integral for
// this unit.
func (u EnergyUnit) Accumulates() bool { return u != Kilowatt }

func (u EnergyUnit) String() string { return string(u) }
