package main

import (
	"context"
	"fmt"
	"log"

	pina219 "github.com/crdietrich/pi-INA219"
)

// compactSink is a minimal custom RecordSink: it skips the header block and
// prints one compact line per sample. The default INA219 source is kept, so
// this example wants real hardware on the bus.
func main() {
	cfg := pina219.DefaultConfig()
	cfg.Count = 5
	cfg.Unit = pina219.WattHour

	rt, err := pina219.New(cfg, pina219.WithSinks(&compactSink{}))
	if err != nil {
		log.Fatalf("build runtime: %v", err)
	}

	if err := rt.Run(context.Background()); err != nil {
		log.Fatalf("run exited: %v", err)
	}
}

type compactSink struct {
	rows int
}

func (s *compactSink) WriteHeader(h pina219.RunHeader) error { return nil }

func (s *compactSink) WriteRecord(sample *pina219.Sample) error {
	s.rows++
	fmt.Printf("#%d %.2fV %.3fA %.3fW total=%.6f\n",
		s.rows,
		sample.Reading.BusVoltage,
		sample.Reading.ShuntCurrent,
		sample.Reading.Power,
		sample.TotalEnergy,
	)
	return nil
}

func (s *compactSink) Name() string { return "compact" }

func (s *compactSink) Close() error { return nil }
