// Package pina219 re-exports the embeddable pieces of the INA219 power
// logger so consumers can import the module root directly.
package pina219

import (
	"github.com/crdietrich/pi-INA219/internal/app/config"
	"github.com/crdietrich/pi-INA219/internal/domain"
	"github.com/crdietrich/pi-INA219/internal/ports"
	"github.com/crdietrich/pi-INA219/pkg/powerlog"
)

// Type aliases so consumers can avoid reaching into subpackages.
type (
	RunConfig     = config.Run
	SerialConfig  = config.SerialConfig
	EnergyUnit    = domain.EnergyUnit
	Reading       = domain.Reading
	Sample        = domain.Sample
	Source        = ports.Source
	Pacer         = ports.Pacer
	RecordSink    = ports.RecordSink
	RunHeader     = ports.RunHeader
	Observability = ports.Observability
	Runtime       = powerlog.Runtime
	Option        = powerlog.Option
)

// Energy units.
const (
	Joule    = domain.Joule
	WattHour = domain.WattHour
	Kilowatt = domain.Kilowatt
)

// DefaultConfig returns the flag defaults of the CLI tool.
func DefaultConfig() RunConfig {
	return config.Default()
}

// LoadConfig reads a yaml run configuration over the defaults.
func LoadConfig(path string) (RunConfig, error) {
	return config.Load(path)
}

// New builds a runtime; see powerlog.New.
func New(cfg RunConfig, opts ...Option) (*Runtime, error) {
	return powerlog.New(cfg, opts...)
}

// Dependency overrides.
func WithSource(src Source) Option { return powerlog.WithSource(src) }

func WithPacer(p Pacer) Option { return powerlog.WithPacer(p) }

func WithSinks(sinks ...RecordSink) Option { return powerlog.WithSinks(sinks...) }

func WithObservability(obs Observability) Option {
	return powerlog.WithObservability(obs)
}
