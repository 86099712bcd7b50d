// Package sampler drives acquisition: one sensor read per pacer tick, energy
// accumulation, and one record per sample fanned out to every sink.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crdietrich/pi-INA219/internal/app/config"
	"github.com/crdietrich/pi-INA219/internal/domain"
	"github.com/crdietrich/pi-INA219/internal/ports"
)

// Runner owns one run: the sensor handle, the energy accumulator, and the
// output fan-out. Construct it fully populated; zero fields are a caller bug
// except Now, which defaults to time.Now.
type Runner struct {
	Config config.Run
	Source ports.Source
	Pacer  ports.Pacer
	Sinks  []ports.RecordSink
	Obs    ports.Observability
	Header ports.RunHeader

	Now func() time.Time // clock seam for tests

	samples int
	total   float64
	span    float64
}

// Run takes a priming read to establish the accumulator baseline, emits the
// header to every sink, then loops: wait for the pacer, read, integrate,
// write. It returns nil on count exhaustion and on interrupt; every other
// error is fatal. deltaT for the first sample is measured from the priming
// read, so clock-start latency never inflates the first energy figure.
func (r *Runner) Run(ctx context.Context) error {
	now := r.Now
	if now == nil {
		now = time.Now
	}

	if _, err := r.Source.Sense(); err != nil {
		return fmt.Errorf("priming read: %w", err)
	}
	t0 := now()
	prev := t0

	for _, s := range r.Sinks {
		if err := s.WriteHeader(r.Header); err != nil {
			return fmt.Errorf("%s header: %w", s.Name(), err)
		}
	}

	for r.Config.Unbounded() || r.samples < r.Config.Count {
		line, err := r.Pacer.Wait(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// Interrupt is a normal termination path.
				return nil
			}
			return err
		}

		reading, err := r.Source.Sense()
		if err != nil {
			return fmt.Errorf("sensor read: %w", err)
		}

		t := now()
		deltaT := t.Sub(prev).Seconds()
		prev = t

		energy := r.Config.Unit.Integrate(reading.Power, deltaT)
		r.total += energy
		r.span = t.Sub(t0).Seconds()

		sample := &domain.Sample{
			Timestamp:   float64(t.UnixNano()) / 1e9,
			Elapsed:     r.span,
			Reading:     reading,
			Energy:      energy,
			TotalEnergy: r.total,
			Correlated:  line,
		}
		for _, s := range r.Sinks {
			if err := s.WriteRecord(sample); err != nil {
				return fmt.Errorf("%s write: %w", s.Name(), err)
			}
		}

		r.samples++
		r.Obs.IncCounter("ina219_samples_total", 1)
		r.Obs.SetGauge("ina219_power_watts", reading.Power)
		r.Obs.SetGauge("ina219_energy_total", r.total)
	}
	return nil
}

// Stats reports what the finished (or interrupted) run accomplished.
func (r *Runner) Stats() (samples int, total, span float64) {
	return r.samples, r.total, r.span
}
