package ports

import "github.com/crdietrich/pi-INA219/internal/domain"

// RunHeader is the descriptive block every sink emits once, before its first
// data row.
type RunHeader struct {
	Lines  []string // metadata block, one entry per line
	Labels []string // column labels, in row order
}

// RecordSink receives the header once and then one record per sample.
type RecordSink interface {
	WriteHeader(h RunHeader) error
	WriteRecord(s *domain.Sample) error
	Name() string
	Close() error
}
