package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// Metrics holds the dispatch collectors on their own registry. A nil *Metrics is a no-op.
type Metrics struct {
	Registry   *prometheus.Registry
	Deliveries *prometheus.CounterVec
	Batches    *prometheus.CounterVec
	BatchTime  prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wedding",
			Name:      "deliveries_total",
			Help:      "Outbound notifications by kind, channel and outcome.",
		}, []string{"kind", "channel", "outcome"}),
		Batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wedding",
			Name:      "dispatch_batches_total",
			Help:      "Admin-triggered dispatch batches by kind and result.",
		}, []string{"kind", "result"}),
		BatchTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wedding",
			Name:      "dispatch_batch_seconds",
			Help:      "Wall time of one dispatch batch.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
	reg.MustRegister(
		m.Deliveries, m.Batches, m.BatchTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveDelivery counts one send attempt. kind is the message type ("REMINDER", "INVITATION", ...).
func (m *Metrics) ObserveDelivery(kind, channel string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSent
	if err != nil {
		outcome = OutcomeFailed
	}
	m.Deliveries.WithLabelValues(kind, channel, outcome).Inc()
}

// ObserveBatch counts one finished batch; result is "ok" or an error class.
func (m *Metrics) ObserveBatch(kind, result string, took time.Duration) {
	if m == nil {
		return
	}
	m.Batches.WithLabelValues(kind, result).Inc()
	m.BatchTime.Observe(took.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
