// Package metrics exposes record counters over Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder observes record creation outcomes.
type Recorder interface {
	RecordCreated(kind, event string)
	RecordFailed(kind, event string)
}

// Nop discards observations.
type Nop struct{}

func (Nop) RecordCreated(string, string) {}
func (Nop) RecordFailed(string, string)  {}

// Prometheus counts created and failed inserts per kind and event.
type Prometheus struct {
	registry *prometheus.Registry
	created  *prometheus.CounterVec
	failed   *prometheus.CounterVec
}

// NewPrometheus builds a recorder on its own registry, with Go runtime and
// process collectors attached.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "poultry",
			Name:      "records_created_total",
			Help:      "Records inserted, by kind and event.",
		}, []string{"kind", "event"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "poultry",
			Name:      "records_failed_total",
			Help:      "Inserts rejected by the storage backend, by kind and event.",
		}, []string{"kind", "event"}),
	}
	reg.MustRegister(
		p.created,
		p.failed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) RecordCreated(kind, event string) {
	p.created.WithLabelValues(kind, event).Inc()
}

func (p *Prometheus) RecordFailed(kind, event string) {
	p.failed.WithLabelValues(kind, event).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
