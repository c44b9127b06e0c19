// Package metrics exposes engine activity as Prometheus series.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iamdhruvsharma3/arbitrage/engine"
)

const namespace = "arbbot"

// Sink is an engine.Sink that keeps counters and gauges for the run.
type Sink struct {
	registry *prometheus.Registry

	detections prometheus.Counter
	rejections prometheus.Counter
	entries    prometheus.Counter
	exits      prometheus.Counter
	anomalies  prometheus.Counter

	parityGap  prometheus.Gauge
	realizedPL prometheus.Gauge
	totalPL    prometheus.Gauge
}

func NewSink() *Sink {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Sink{
		registry: reg,

		detections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detections_total",
			Help:      "Parity gaps that cleared the detection threshold.",
		}),
		rejections: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Entries rejected by the risk gate or entry-cost checks.",
		}),
		entries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_total",
			Help:      "Hypothetical positions opened.",
		}),
		exits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exits_total",
			Help:      "Positions settled and closed.",
		}),
		anomalies: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "anomalies_total",
			Help:      "Settlements with losses far beyond the expected edge.",
		}),

		parityGap: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "parity_gap",
			Help:      "Parity gap of the most recent detection.",
		}),
		realizedPL: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realized_pl",
			Help:      "Realized P&L of the most recently closed position.",
		}),
		totalPL: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_pl",
			Help:      "Cumulative realized P&L for the run.",
		}),
	}
}

func (s *Sink) Emit(ev engine.Event) {
	switch ev.Kind {
	case engine.KindDetection:
		s.detections.Inc()
		s.parityGap.Set(ev.Signal.ParityGap)
	case engine.KindRejection:
		s.rejections.Inc()
	case engine.KindEntry:
		s.entries.Inc()
	case engine.KindExit:
		s.exits.Inc()
		s.realizedPL.Set(ev.Position.RealizedPL)
		s.totalPL.Add(ev.Position.RealizedPL)
	case engine.KindAnomaly:
		s.anomalies.Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (s *Sink) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}
