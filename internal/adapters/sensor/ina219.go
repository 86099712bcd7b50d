// Package sensor adapts the INA219 current/power monitor behind ports.Source.
package sensor

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ina219"
	"periph.io/x/host/v3"

	"github.com/crdietrich/pi-INA219/internal/domain"
	"github.com/crdietrich/pi-INA219/internal/ports"
)

// Config captures the bus details required to reach the chip.
type Config struct {
	Bus           string // i2creg bus name; "" opens the first available bus
	Address       int
	SenseResistor physic.ElectricResistance
	MaxCurrent    physic.ElectricCurrent
}

func (c *Config) ApplyDefaults() {
	if c.Address == 0 {
		c.Address = 0x40
	}
	if c.SenseResistor == 0 {
		c.SenseResistor = 100 * physic.MilliOhm
	}
	if c.MaxCurrent == 0 {
		c.MaxCurrent = 3200 * physic.MilliAmpere
	}
}

func (c *Config) Validate() error {
	if c.Address < 0 || c.Address > 0x7f {
		return fmt.Errorf("address %#x out of 7-bit range", c.Address)
	}
	return nil
}

// host.Init scans drivers process-wide; doing it more than once is wasted
// work when several devices share the bus.
var (
	hostOnce sync.Once
	hostErr  error
)

// INA219 owns the bus handle for the lifetime of the process.
type INA219 struct {
	bus i2c.BusCloser
	dev *ina219.Dev
}

func New(cfg Config) (*INA219, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hostOnce.Do(func() {
		_, hostErr = host.Init()
	})
	if hostErr != nil {
		return nil, fmt.Errorf("periph host init: %w", hostErr)
	}

	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("i2c open %q: %w", cfg.Bus, err)
	}

	dev, err := ina219.New(bus, &ina219.Opts{
		Address:       cfg.Address,
		SenseResistor: cfg.SenseResistor,
		MaxCurrent:    cfg.MaxCurrent,
	})
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("ina219 at %#x: %w", cfg.Address, err)
	}

	return &INA219{bus: bus, dev: dev}, nil
}

// Sense takes one acquisition and converts the physic quantities to floats in
// base SI units.
func (s *INA219) Sense() (domain.Reading, error) {
	pm, err := s.dev.Sense()
	if err != nil {
		return domain.Reading{}, fmt.Errorf("ina219 sense: %w", err)
	}
	return domain.Reading{
		BusVoltage:   float64(pm.Voltage) / float64(physic.Volt),
		ShuntCurrent: float64(pm.Current) / float64(physic.Ampere),
		Power:        float64(pm.Power) / float64(physic.Watt),
	}, nil
}

func (s *INA219) Close() error {
	return s.bus.Close()
}

var _ ports.Source = (*INA219)(nil)
