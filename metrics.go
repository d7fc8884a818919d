package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus instrumentation for registry activity. Create
// one per Prometheus registerer and share it across instances; counters
// then aggregate over all of them.
type Metrics struct {
	Registered    prometheus.Counter
	Unregistered  prometheus.Counter
	Updated       prometheus.Counter
	ReindexPasses prometheus.Counter
	TicketsLive   prometheus.Gauge
}

// NewMetrics creates and registers the registry metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Registered: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_tickets_registered_total",
			Help: "Total number of tickets registered",
		}),
		Unregistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_tickets_unregistered_total",
			Help: "Total number of tickets unregistered",
		}),
		Updated: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_tickets_updated_total",
			Help: "Total number of ticket upserts against existing tickets",
		}),
		ReindexPasses: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_reindex_passes_total",
			Help: "Total number of reindex passes, lazy or explicit",
		}),
		TicketsLive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "registry_tickets_live",
			Help: "Current number of live tickets",
		}),
	}
}
