// Package powerlog wires the INA219 logger end to end: sensor source, pacing,
// sinks, and observability, with option hooks so callers can embed the loop
// with their own implementations of any port.
package powerlog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/crdietrich/pi-INA219/internal/adapters/observability"
	"github.com/crdietrich/pi-INA219/internal/adapters/sensor"
	"github.com/crdietrich/pi-INA219/internal/adapters/serialport"
	"github.com/crdietrich/pi-INA219/internal/adapters/sink"
	"github.com/crdietrich/pi-INA219/internal/app/config"
	"github.com/crdietrich/pi-INA219/internal/app/sampler"
	"github.com/crdietrich/pi-INA219/internal/ports"
)

// Runtime owns every handle a run acquires and releases all of them on every
// exit path, the error path included.
type Runtime struct {
	cfg    config.Run
	runner *sampler.Runner
	stats  *observability.PromStats // nil unless a metrics file is configured

	closeOnce sync.Once
	closers   []func() error
	closeErr  error
}

// New validates the config and builds the default adapters: INA219 source,
// timer or serial-line pacer, terminal sink plus optional CSV sink. Options
// override any dependency. Handles opened before a later failure are closed
// before New returns.
func New(cfg config.Run, opts ...Option) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o overrides
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	rt := &Runtime{cfg: cfg}

	obs := o.obs
	if obs == nil {
		if cfg.MetricsFile != "" {
			rt.stats = observability.NewPromStats()
			obs = rt.stats
		} else {
			obs = observability.Nop{}
		}
	}

	src := o.source
	if src == nil {
		s, err := sensor.New(sensor.Config{Bus: cfg.Bus, Address: cfg.Address})
		if err != nil {
			return nil, err
		}
		src = s
	}
	rt.closers = append(rt.closers, src.Close)

	pacer := o.pacer
	if pacer == nil {
		if cfg.SerialEnabled() {
			transport, err := serialport.Open(cfg.Serial.Port, cfg.Serial.Baud)
			if err != nil {
				rt.release()
				return nil, err
			}
			rt.closers = append(rt.closers, transport.Close)
			pacer = serialport.NewLinePacer(transport, cfg.Serial.Tx, obs)
		} else {
			pacer = sampler.TimerPacer{Interval: time.Duration(cfg.Interval * float64(time.Second))}
		}
	}

	sinks := o.sinks
	savePath := ""
	if sinks == nil {
		termW := o.terminal
		if termW == nil {
			termW = os.Stdout
		}
		sinks = []ports.RecordSink{sink.NewTerminal(termW, cfg.GraphMax)}

		if cfg.SaveEnabled() {
			csv, err := sink.NewCSV(cfg.SaveDir, time.Now())
			if err != nil {
				rt.release()
				return nil, err
			}
			savePath = csv.Path()
			sinks = append(sinks, csv)
		}
	}
	for _, s := range sinks {
		rt.closers = append(rt.closers, s.Close)
	}

	rt.runner = &sampler.Runner{
		Config: cfg,
		Source: src,
		Pacer:  pacer,
		Sinks:  sinks,
		Obs:    obs,
		Header: sink.BuildHeader(cfg, savePath),
	}
	return rt, nil
}

// Run drives the sample loop until count exhaustion, interrupt, or a fatal
// error, then tears everything down. Interrupt is a clean completion.
func (rt *Runtime) Run(ctx context.Context) (err error) {
	defer func() {
		err = errors.Join(err, rt.Close())
	}()

	if err := rt.runner.Run(ctx); err != nil {
		return err
	}

	samples, total, span := rt.runner.Stats()
	log.Printf("run complete: %d samples over %.3f s, total energy %.5f %s",
		samples, span, total, rt.cfg.Unit)
	return nil
}

// Close releases every acquired handle exactly once and, when configured,
// dumps the metrics textfile. Safe to call more than once.
func (rt *Runtime) Close() error {
	rt.closeOnce.Do(func() {
		rt.closeErr = rt.release()
		if rt.stats != nil && rt.cfg.MetricsFile != "" {
			if err := rt.stats.WriteTextfile(rt.cfg.MetricsFile); err != nil {
				rt.closeErr = errors.Join(rt.closeErr, fmt.Errorf("metrics textfile: %w", err))
			}
		}
	})
	return rt.closeErr
}

// release closes in reverse acquisition order, keeping every error.
func (rt *Runtime) release() error {
	var err error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, rt.closers[i]())
	}
	rt.closers = nil
	return err
}
