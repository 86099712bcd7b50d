package sink

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crdietrich/pi-INA219/internal/domain"
	"github.com/crdietrich/pi-INA219/internal/ports"
)

// CSV persists rows to a timestamped file in the chosen directory. Records
// are flushed line by line so an interrupted run still leaves complete rows
// behind.
type CSV struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

// NewCSV creates <dir>/<YYYY_MM_DD_HH_MM_SS>_INA219.csv. The directory must
// already exist.
func NewCSV(dir string, now time.Time) (*CSV, error) {
	path := filepath.Join(dir, now.Format("2006_01_02_15_04_05")+"_INA219.csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create save file: %w", err)
	}
	return &CSV{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

func (c *CSV) Name() string { return "csv" }

// Path is where the rows are going, for the run header.
func (c *CSV) Path() string { return c.path }

func (c *CSV) WriteHeader(h ports.RunHeader) error {
	for _, line := range h.Lines {
		if _, err := fmt.Fprintln(c.w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(c.w, strings.Join(h.Labels, ",")); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *CSV) WriteRecord(s *domain.Sample) error {
	row := strings.Join(rowFields(s), ",")
	if s.Correlated != "" {
		row += "," + s.Correlated
	}
	if _, err := fmt.Fprintln(c.w, row); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *CSV) Close() error {
	return errors.Join(c.w.Flush(), c.f.Close())
}

var _ ports.RecordSink = (*CSV)(nil)
