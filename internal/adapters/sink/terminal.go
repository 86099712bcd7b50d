package sink

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/crdietrich/pi-INA219/internal/domain"
	"github.com/crdietrich/pi-INA219/internal/plot"
	"github.com/crdietrich/pi-INA219/internal/ports"
)

const (
	colSep      = "  "
	minBarChars = 10
	maxBarChars = 40
)

// Terminal writes human-aligned rows: every field is right-justified to its
// column label's width, fixed once when the header is written.
type Terminal struct {
	w        io.Writer
	widths   []int
	graphMax float64
	barChars int
}

// NewTerminal builds the always-on sink. graphMax > 0 appends a bar plot
// scaled to that power; the character budget follows the tty width when w is
// one, otherwise the minimum budget.
func NewTerminal(w io.Writer, graphMax float64) *Terminal {
	return &Terminal{w: w, graphMax: graphMax}
}

func (t *Terminal) Name() string { return "terminal" }

func (t *Terminal) WriteHeader(h ports.RunHeader) error {
	for _, line := range h.Lines {
		if _, err := fmt.Fprintln(t.w, line); err != nil {
			return err
		}
	}

	t.widths = make([]int, len(h.Labels))
	rowWidth := 0
	for i, label := range h.Labels {
		t.widths[i] = len(label)
		rowWidth += len(label)
	}
	rowWidth += len(colSep) * (len(h.Labels) - 1)
	t.barChars = barBudget(t.w, rowWidth)

	_, err := fmt.Fprintln(t.w, strings.Join(h.Labels, colSep))
	return err
}

func (t *Terminal) WriteRecord(s *domain.Sample) error {
	fields := rowFields(s)
	for i, f := range fields {
		if i < len(t.widths) {
			fields[i] = fmt.Sprintf("%*s", t.widths[i], f)
		}
	}
	row := strings.Join(fields, colSep)
	if t.graphMax > 0 {
		row += colSep + plot.Bar(s.Reading.Power, t.graphMax, 0, t.barChars)
	}
	if s.Correlated != "" {
		row += colSep + s.Correlated
	}
	_, err := fmt.Fprintln(t.w, row)
	return err
}

// Close is a no-op: the terminal is not ours to close.
func (t *Terminal) Close() error { return nil }

// barBudget sizes the bar plot to the space left of the data columns on a
// real tty, clamped so narrow terminals still get a usable bar.
func barBudget(w io.Writer, rowWidth int) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return minBarChars
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return minBarChars
	}
	budget := width - rowWidth - len(colSep)
	if budget < minBarChars {
		return minBarChars
	}
	if budget > maxBarChars {
		return maxBarChars
	}
	return budget
}

var _ ports.RecordSink = (*Terminal)(nil)
