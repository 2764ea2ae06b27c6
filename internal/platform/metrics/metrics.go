package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RecordsCreated  *prometheus.CounterVec
	Attachments     *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the given registerer. Tests pass
// a fresh registry to avoid duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "estate_records_created_total",
			Help: "Total records created, by entity collection.",
		}, []string{"entity"}),
		Attachments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "estate_attachments_total",
			Help: "Total asset/beneficiary attachments to wills.",
		}, []string{"kind"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "estate_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// RecordCreated increments the creation counter for an entity collection.
func (m *Metrics) RecordCreated(entity string) {
	if m == nil {
		return
	}
	m.RecordsCreated.WithLabelValues(entity).Inc()
}

// RecordAttachment increments the attachment counter for a kind
// ("asset" or "beneficiary").
func (m *Metrics) RecordAttachment(kind string) {
	if m == nil {
		return
	}
	m.Attachments.WithLabelValues(kind).Inc()
}
