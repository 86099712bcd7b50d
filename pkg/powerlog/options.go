package powerlog

import (
	"io"

	"github.com/crdietrich/pi-INA219/internal/ports"
)

// Option overrides one of the runtime's default dependencies.
type Option func(*overrides)

type overrides struct {
	source   ports.Source
	pacer    ports.Pacer
	sinks    []ports.RecordSink
	obs      ports.Observability
	terminal io.Writer
}

// WithSource injects a custom measurement source (simulators, other chips).
func WithSource(src ports.Source) Option {
	return func(o *overrides) {
		o.source = src
	}
}

// WithPacer overrides the cadence: timer, serial line, or anything custom.
func WithPacer(p ports.Pacer) Option {
	return func(o *overrides) {
		o.pacer = p
	}
}

// WithSinks replaces the default sink set entirely.
func WithSinks(sinks ...ports.RecordSink) Option {
	return func(o *overrides) {
		o.sinks = sinks
	}
}

// WithObservability plugs in a custom stats backend.
func WithObservability(obs ports.Observability) Option {
	return func(o *overrides) {
		o.obs = obs
	}
}

// WithTerminal redirects the default terminal sink, mainly for tests.
func WithTerminal(w io.Writer) Option {
	return func(o *overrides) {
		o.terminal = w
	}
}
