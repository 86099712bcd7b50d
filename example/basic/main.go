package main

import (
	"context"
	"log"
	"math"
	"os/signal"
	"syscall"
	"time"

	pina219 "github.com/crdietrich/pi-INA219"
)

// simSensor fakes a load whose draw breathes between 0.5 W and 2.5 W, so the
// example runs without hardware.
type simSensor struct {
	start time.Time
}

func (s *simSensor) Sense() (pina219.Reading, error) {
	t := time.Since(s.start).Seconds()
	power := 1.5 + math.Sin(t)
	return pina219.Reading{
		BusVoltage:   5.0,
		ShuntCurrent: power / 5.0,
		Power:        power,
	}, nil
}

func (s *simSensor) Close() error { return nil }

func main() {
	cfg := pina219.DefaultConfig()
	cfg.Count = 10
	cfg.Interval = 0.5
	cfg.GraphMax = 3.0

	rt, err := pina219.New(cfg, pina219.WithSource(&simSensor{start: time.Now()}))
	if err != nil {
		log.Fatalf("build runtime: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rt.Run(ctx); err != nil {
		log.Fatalf("run exited: %v", err)
	}
}
