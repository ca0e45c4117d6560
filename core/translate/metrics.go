package translate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the translation counters. A nil Registerer yields working
// but unregistered collectors.
type Metrics struct {
	requests  *prometheus.CounterVec
	retries   *prometheus.CounterVec
	degraded  *prometheus.CounterVec
	cacheHits *prometheus.CounterVec
}

// NewMetrics creates the translation collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "novelpipe",
			Subsystem: "translate",
			Name:      "requests_total",
			Help:      "Translation attempts by service and outcome.",
		}, []string{"service", "outcome"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "novelpipe",
			Subsystem: "translate",
			Name:      "retries_total",
			Help:      "Translation retries by service.",
		}, []string{"service"}),
		degraded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "novelpipe",
			Subsystem: "translate",
			Name:      "degraded_total",
			Help:      "Texts returned untranslated after exhausting retries.",
		}, []string{"service"}),
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "novelpipe",
			Subsystem: "translate",
			Name:      "cache_hits_total",
			Help:      "Translations served from the cache.",
		}, []string{"service"}),
	}
}

func (m *Metrics) request(service string, ok bool) {
	outcome := "error"
	if ok {
		outcome = "success"
	}
	m.requests.WithLabelValues(service, outcome).Inc()
}

func (m *Metrics) retry(service string)    { m.retries.WithLabelValues(service).Inc() }
func (m *Metrics) degrade(service string)  { m.degraded.WithLabelValues(service).Inc() }
func (m *Metrics) cacheHit(service string) { m.cacheHits.WithLabelValues(service).Inc() }
