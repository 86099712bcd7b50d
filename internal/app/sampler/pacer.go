package sampler

import (
	"context"
	"time"

	"github.com/crdietrich/pi-INA219/internal/ports"
)

// TimerPacer is the default fixed-cadence pacing: sleep the interval, wake,
// sample. The interval floor is enforced at configuration time, not here.
type TimerPacer struct {
	Interval time.Duration
}

func (p TimerPacer) Wait(ctx context.Context) (string, error) {
	t := time.NewTimer(p.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-t.C:
		return "", nil
	}
}

var _ ports.Pacer = TimerPacer{}
