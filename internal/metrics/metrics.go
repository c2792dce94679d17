package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWithPrefix("leaguestats_", registry)

var (
	// RiotRequestsTotal counts upstream responses by routing group and status class.
	RiotRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "riot_requests_total",
			Help: "Total number of upstream calls by group and outcome",
		},
		[]string{"group", "outcome"},
	)

	LimiterAdmittedTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "limiter_admitted_total",
			Help: "Calls admitted by the window limiter",
		},
		[]string{"group"},
	)

	LimiterQueued = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "limiter_queued",
			Help: "Calls waiting for the next window",
		},
		[]string{"group"},
	)

	// RateLimitHitsTotal counts 429 responses received despite local admission.
	RateLimitHitsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_hits_total",
			Help: "Upstream 429 responses",
		},
		[]string{"group"},
	)

	UpstreamLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_latency_ms",
			Help:    "Upstream latency in milliseconds",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"group"},
	)
)

func init() {
	registry.MustRegister(collectors.NewGoCollector())
}

// Handler exposes the private registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
