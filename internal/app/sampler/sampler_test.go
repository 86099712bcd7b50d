package sampler

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/crdietrich/pi-INA219/internal/app/config"
	"github.com/crdietrich/pi-INA219/internal/domain"
	"github.com/crdietrich/pi-INA219/internal/ports"
)

type mockSource struct {
	power  float64
	senses int
	failAt int // 1-based sense call that errors; 0 never fails
}

func (m *mockSource) Sense() (domain.Reading, error) {
	m.senses++
	if m.failAt > 0 && m.senses >= m.failAt {
		return domain.Reading{}, errors.New("bus gone")
	}
	return domain.Reading{BusVoltage: 5.0, ShuntCurrent: m.power / 5.0, Power: m.power}, nil
}

func (m *mockSource) Close() error { return nil }

type memSink struct {
	headers int
	records []domain.Sample
	failing bool
}

func (m *memSink) WriteHeader(h ports.RunHeader) error {
	m.headers++
	return nil
}

func (m *memSink) WriteRecord(s *domain.Sample) error {
	if m.failing {
		return errors.New("sink broken")
	}
	m.records = append(m.records, *s)
	return nil
}

func (m *memSink) Name() string { return "mem" }

func (m *memSink) Close() error { return nil }

// instantPacer fires immediately; after n waits it reports cancellation.
type instantPacer struct {
	line      string
	waits     int
	stopAfter int
}

func (p *instantPacer) Wait(ctx context.Context) (string, error) {
	p.waits++
	if p.stopAfter > 0 && p.waits > p.stopAfter {
		return "", context.Canceled
	}
	return p.line, nil
}

type nopObs struct{}

func (nopObs) LogError(msg string, err error)    {}
func (nopObs) IncCounter(name string, v float64) {}
func (nopObs) SetGauge(name string, v float64)   {}

// steppedClock returns times advancing by step per call, starting at base.
func steppedClock(base time.Time, step time.Duration) func() time.Time {
	calls := 0
	return func() time.Time {
		t := base.Add(time.Duration(calls) * step)
		calls++
		return t
	}
}

func newRunner(cfg config.Run, src *mockSource, pacer ports.Pacer, sink *memSink, step time.Duration) *Runner {
	return &Runner{
		Config: cfg,
		Source: src,
		Pacer:  pacer,
		Sinks:  []ports.RecordSink{sink},
		Obs:    nopObs{},
		Header: ports.RunHeader{Lines: []string{"test run"}, Labels: []string{"a", "b"}},
		Now:    steppedClock(time.Unix(1700000000, 0), step),
	}
}

func TestRunEmitsExactlyNRows(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 3
	src := &mockSource{power: 2.0}
	sink := &memSink{}

	r := newRunner(cfg, src, &instantPacer{}, sink, time.Second)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(sink.records) != 3 {
		t.Fatalf("expected 3 data rows, got %d", len(sink.records))
	}
	if sink.headers != 1 {
		t.Fatalf("expected exactly one header, got %d", sink.headers)
	}
	// Priming read plus one read per row.
	if src.senses != 4 {
		t.Fatalf("expected 4 sensor reads, got %d", src.senses)
	}
}

func TestTotalEnergyIsSumOfSampleEnergies(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 3
	cfg.Unit = domain.Joule
	src := &mockSource{power: 2.0}
	sink := &memSink{}

	r := newRunner(cfg, src, &instantPacer{}, sink, time.Second)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var sum float64
	for i, rec := range sink.records {
		sum += rec.Energy
		if math.Abs(rec.TotalEnergy-sum) > 1e-9 {
			t.Fatalf("row %d: total %g != running sum %g", i, rec.TotalEnergy, sum)
		}
	}
	// 2 W for 1 s per sample, 3 samples.
	if math.Abs(sum-6.0) > 1e-9 {
		t.Fatalf("expected 6 J total, got %g", sum)
	}

	last := sink.records[len(sink.records)-1]
	if math.Abs(last.Elapsed-3.0) > 1e-9 {
		t.Fatalf("expected 3 s elapsed, got %g", last.Elapsed)
	}
}

func TestWattHourScalesTimeBase(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 3
	cfg.Unit = domain.WattHour
	src := &mockSource{power: 2.0}
	sink := &memSink{}

	r := newRunner(cfg, src, &instantPacer{}, sink, time.Second)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	got := sink.records[2].TotalEnergy
	if math.Abs(got-6.0/3600) > 1e-12 {
		t.Fatalf("expected %g Wh, got %g", 6.0/3600, got)
	}
}

func TestKilowattIgnoresInterval(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 2
	cfg.Unit = domain.Kilowatt
	src := &mockSource{power: 1500.0}
	sink := &memSink{}

	// Large step: a time-integrating unit would blow up, kW must not.
	r := newRunner(cfg, src, &instantPacer{}, sink, time.Minute)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	for i, rec := range sink.records {
		if math.Abs(rec.Energy-1.5) > 1e-9 {
			t.Fatalf("row %d: expected 1.5 kW display, got %g", i, rec.Energy)
		}
	}
}

func TestFirstDeltaTMeasuredFromPrimingRead(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 1
	src := &mockSource{power: 4.0}
	sink := &memSink{}

	// Clock calls: t0 at priming, then first sample 1.5 s later.
	times := []time.Time{
		time.Unix(100, 0),
		time.Unix(101, 500_000_000),
	}
	i := 0
	r := newRunner(cfg, src, &instantPacer{}, sink, 0)
	r.Now = func() time.Time {
		t := times[i]
		i++
		return t
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if math.Abs(sink.records[0].Energy-6.0) > 1e-9 {
		t.Fatalf("expected 4 W * 1.5 s = 6 J, got %g", sink.records[0].Energy)
	}
}

func TestCancellationIsCleanTermination(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 10
	src := &mockSource{power: 1.0}
	sink := &memSink{}

	r := newRunner(cfg, src, &instantPacer{stopAfter: 4}, sink, time.Second)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("interrupt must not be an error, got %v", err)
	}
	if len(sink.records) != 4 {
		t.Fatalf("expected 4 complete rows before cancellation, got %d", len(sink.records))
	}

	samples, total, _ := r.Stats()
	if samples != 4 || total != sink.records[3].TotalEnergy {
		t.Fatalf("stats out of step: samples=%d total=%g", samples, total)
	}
}

func TestUnboundedRunStopsOnlyOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 0 // unbounded
	src := &mockSource{power: 1.0}
	sink := &memSink{}

	r := newRunner(cfg, src, &instantPacer{stopAfter: 25}, sink, time.Second)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.records) != 25 {
		t.Fatalf("expected 25 rows past the finite default, got %d", len(sink.records))
	}
}

func TestSensorFailureIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 5
	src := &mockSource{power: 1.0, failAt: 3} // priming + 1 row, then die
	sink := &memSink{}

	r := newRunner(cfg, src, &instantPacer{}, sink, time.Second)
	err := r.Run(context.Background())
	if err == nil {
		t.Fatalf("expected sensor failure to propagate")
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 complete row before the failure, got %d", len(sink.records))
	}
}

func TestPrimingFailureWritesNothing(t *testing.T) {
	cfg := config.Default()
	src := &mockSource{power: 1.0, failAt: 1}
	sink := &memSink{}

	r := newRunner(cfg, src, &instantPacer{}, sink, time.Second)
	if err := r.Run(context.Background()); err == nil {
		t.Fatalf("expected priming failure to propagate")
	}
	if sink.headers != 0 || len(sink.records) != 0 {
		t.Fatalf("nothing should be written after a failed priming read")
	}
}

func TestCorrelatedLineRidesTheSample(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 2
	src := &mockSource{power: 1.0}
	sink := &memSink{}

	r := newRunner(cfg, src, &instantPacer{line: "valve=open"}, sink, time.Second)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	for i, rec := range sink.records {
		if rec.Correlated != "valve=open" {
			t.Fatalf("row %d missing correlated line: %+v", i, rec)
		}
	}
}

func TestSinkFailureIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.Count = 2
	src := &mockSource{power: 1.0}
	sink := &memSink{failing: true}

	r := newRunner(cfg, src, &instantPacer{}, sink, time.Second)
	if err := r.Run(context.Background()); err == nil {
		t.Fatalf("expected sink failure to propagate")
	}
}

func TestTimerPacerHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := TimerPacer{Interval: time.Hour}
	done := make(chan error, 1)
	go func() {
		_, err := p.Wait(ctx)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("timer pacer did not observe cancellation")
	}
}

func TestTimerPacerFiresAfterInterval(t *testing.T) {
	p := TimerPacer{Interval: 5 * time.Millisecond}
	start := time.Now()
	line, err := p.Wait(context.Background())
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if line != "" {
		t.Fatalf("timer pacing must not produce a correlated line")
	}
	if time.Since(start) < 5*time.Millisecond {
		t.Fatalf("pacer returned before the interval elapsed")
	}
}
