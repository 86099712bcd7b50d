package serialport

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/crdietrich/pi-INA219/internal/ports"
)

// LinePacer paces the sample loop on inbound serial lines. A non-decodable
// line is dropped and the wait continues, so the loop's sample counter never
// advances on garbage input. Transport errors are fatal and propagate.
type LinePacer struct {
	transport LineTransport
	tx        string // written before each blocking read when non-empty
	obs       ports.Observability
}

func NewLinePacer(t LineTransport, tx string, obs ports.Observability) *LinePacer {
	return &LinePacer{transport: t, tx: tx, obs: obs}
}

func (p *LinePacer) Wait(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if p.tx != "" {
			if err := p.transport.WriteLine(p.tx); err != nil {
				return "", fmt.Errorf("serial write: %w", err)
			}
		}

		line, err := p.transport.ReadLine()
		if err != nil {
			return "", fmt.Errorf("serial read: %w", err)
		}
		if !utf8.ValidString(line) {
			p.obs.IncCounter("ina219_serial_skipped_total", 1)
			continue
		}
		return line, nil
	}
}

var _ ports.Pacer = (*LinePacer)(nil)
