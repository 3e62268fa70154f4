package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics gom các collector của một service trên registry riêng
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// chỉ order service dùng các collector dưới đây
	PeerCalls          *prometheus.CounterVec
	PeerLatency        *prometheus.HistogramVec
	EnrichmentFallback *prometheus.CounterVec
}

func New(service string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	constLabels := prometheus.Labels{"service": service}

	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "bookstore",
			Name:        "http_requests_total",
			Help:        "HTTP requests handled, by route and status.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "bookstore",
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		PeerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "bookstore",
			Name:        "peer_calls_total",
			Help:        "Outbound calls to peer services, by peer and outcome.",
			ConstLabels: constLabels,
		}, []string{"peer", "outcome"}),
		PeerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "bookstore",
			Name:        "peer_call_duration_seconds",
			Help:        "Outbound call latency to peer services.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"peer"}),
		EnrichmentFallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "bookstore",
			Name:        "order_enrichment_fallbacks_total",
			Help:        "Order enrichment fields replaced by their placeholder value.",
			ConstLabels: constLabels,
		}, []string{"field"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPLatency, m.PeerCalls, m.PeerLatency, m.EnrichmentFallback)
	return m
}

// Handler phục vụ GET /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
