// Package metrics provides Prometheus instrumentation for the Linkora
// backend: counters for matchmaking and swipe throughput and a histogram for
// matchmaking latency.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MatchRequestsTotal counts matchmaking requests labeled by the strategy
	// that served them: "proximity" or "attribute".
	MatchRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "linkora_match_requests_total",
		Help: "Total number of matchmaking requests by strategy",
	}, []string{"strategy"})

	// MatchRequestDuration records end-to-end matchmaking latency in seconds.
	MatchRequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "linkora_match_request_duration_seconds",
		Help:    "Matchmaking request latency in seconds",
		Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2, 4, 8},
	})

	// SwipesTotal counts recorded swipe decisions labeled by action.
	SwipesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "linkora_swipes_total",
		Help: "Total number of swipe decisions recorded",
	}, []string{"action"})

	// MutualMatchesTotal counts confirmed mutual matches.
	MutualMatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkora_mutual_matches_total",
		Help: "Total number of confirmed mutual matches",
	})

	// NotificationsPublished counts notification rows pushed to the realtime bus.
	NotificationsPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkora_notifications_published_total",
		Help: "Total number of notifications published to the realtime bus",
	})
)

func init() {
	prometheus.MustRegister(
		MatchRequestsTotal,
		MatchRequestDuration,
		SwipesTotal,
		MutualMatchesTotal,
		NotificationsPublished,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
