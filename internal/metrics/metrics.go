// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream request results
const (
	ResultOK    = "ok"
	ResultEmpty = "empty"
	ResultError = "error"
)

var (
	SearchCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rep_tracker_youtube_cache_hits_total",
		Help: "Video searches answered from the query cache.",
	})

	SearchCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rep_tracker_youtube_cache_misses_total",
		Help: "Video searches not found in the query cache.",
	})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rep_tracker_youtube_upstream_requests_total",
		Help: "Calls made to the YouTube search API, by result.",
	}, []string{"result"})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
