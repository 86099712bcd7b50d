package ports

import "github.com/crdietrich/pi-INA219/internal/domain"

// Source is one measurement device. Sense is called exactly once per loop
// iteration; a Sense error is fatal to the run.
type Source interface {
	Sense() (domain.Reading, error)
	Close() error
}
