// Package observability tracks run statistics on a private Prometheus
// registry. This tool has no network surface, so the registry is dumped in
// textfile-collector format at teardown instead of being served.
package observability

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/crdietrich/pi-INA219/internal/ports"
)

type PromStats struct {
	registry *prometheus.Registry
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
}

func NewPromStats() *PromStats {
	samples := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ina219_samples_total",
		Help: "Data rows emitted to the terminal sink.",
	})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ina219_serial_skipped_total",
		Help: "Malformed serial lines dropped in correlation mode.",
	})
	energy := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ina219_energy_total",
		Help: "Accumulated energy in the run's configured unit.",
	})
	power := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ina219_power_watts",
		Help: "Most recent power reading.",
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(samples, skipped, energy, power)

	return &PromStats{
		registry: reg,
		counters: map[string]prometheus.Counter{
			"ina219_samples_total":        samples,
			"ina219_serial_skipped_total": skipped,
		},
		gauges: map[string]prometheus.Gauge{
			"ina219_energy_total": energy,
			"ina219_power_watts":  power,
		},
	}
}

func (p *PromStats) LogError(msg string, err error) {
	if err != nil {
		log.Printf("ERROR: %s: %v", msg, err)
	}
}

func (p *PromStats) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromStats) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

// WriteTextfile dumps the registry in node-exporter textfile format.
func (p *PromStats) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}

var _ ports.Observability = (*PromStats)(nil)
