package observability

import (
	"log"

	"github.com/crdietrich/pi-INA219/internal/ports"
)

// Nop logs errors to stderr and discards all metrics. It is the default when
// no metrics file is requested.
type Nop struct{}

func (Nop) LogError(msg string, err error) {
	if err != nil {
		log.Printf("ERROR: %s: %v", msg, err)
	}
}

func (Nop) IncCounter(name string, v float64) {}

func (Nop) SetGauge(name string, v float64) {}

var _ ports.Observability = Nop{}
