package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics owns a private registry so several apps can coexist in one process.
type Metrics struct {
	Registry      *prometheus.Registry
	Requests      *prometheus.CounterVec
	Latency       *prometheus.HistogramVec
	UpstreamCalls *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chaingate",
			Name:      "http_requests_total",
			Help:      "Inbound requests by route and status code.",
		}, []string{"route", "status"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chaingate",
			Name:      "http_request_duration_seconds",
			Help:      "Inbound request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		UpstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chaingate",
			Name:      "upstream_calls_total",
			Help:      "Outbound provider calls by provider, method and outcome.",
		}, []string{"provider", "method", "outcome"}),
	}

	m.Registry.MustRegister(
		m.Requests,
		m.Latency,
		m.UpstreamCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveUpstream records one outbound call. A nil receiver is a no-op.
func (m *Metrics) ObserveUpstream(provider, method string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamCalls.WithLabelValues(provider, method, outcome).Inc()
}
