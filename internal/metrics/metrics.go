package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels used with EventsSent and OutboxPublished.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

type Registry struct {
	reg              *prometheus.Registry
	PayloadsBuilt    prometheus.Counter
	EventsSent       *prometheus.CounterVec
	SerializeSeconds prometheus.Histogram
	OutboxPublished  *prometheus.CounterVec
	OutboxPending    prometheus.Gauge
	SettingsValid    prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	payloads := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "marketing_payloads_built_total",
		Help: "Order payloads serialized.",
	})
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "marketing_purchase_events_total",
		Help: "Purchase events handed to the publisher, by result.",
	}, []string{"result"})
	serialize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "marketing_serialize_seconds",
		Help:    "Time spent loading and serializing an order.",
		Buckets: prometheus.DefBuckets,
	})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "marketing_outbox_published_total",
		Help: "Outbox messages delivered to the broker, by result.",
	}, []string{"result"})
	pending := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "marketing_outbox_batch_size",
		Help: "Messages fetched by the last outbox poll.",
	})
	settingsValid := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "marketing_settings_valid",
		Help: "1 when the platform accepted the configured credentials on the last check.",
	})

	r.MustRegister(payloads, events, serialize, published, pending, settingsValid)

	return &Registry{
		reg:              r,
		PayloadsBuilt:    payloads,
		EventsSent:       events,
		SerializeSeconds: serialize,
		OutboxPublished:  published,
		OutboxPending:    pending,
		SettingsValid:    settingsValid,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
