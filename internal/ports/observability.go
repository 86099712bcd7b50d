package ports

// Observability is the run's stats and error surface. Implementations must
// tolerate unknown metric names.
type Observability interface {
	LogError(msg string, err error)

	IncCounter(name string, v float64)
	SetGauge(name string, v float64)
}
