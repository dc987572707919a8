// Package metrics exposes Prometheus collectors for search calls and the
// HTTP facade.
package metrics

import (
	"strconv"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "fo_semantic"

type Metrics struct {
	searchRequests *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searchRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_requests_total",
				Help:      "Total number of search API calls",
			},
			[]string{"outcome", "status"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Search API call duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path", "status"},
		),
	}

	reg.MustRegister(m.searchRequests, m.searchDuration, m.httpRequests, m.httpDuration)
	return m
}

// ObserveSearch records one search API call.
func (m *Metrics) ObserveSearch(outcome string, status int, d time.Duration) {
	m.searchRequests.WithLabelValues(outcome, strconv.Itoa(status)).Inc()
	m.searchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// Filter records HTTP request duration and count for the restful container.
func (m *Metrics) Filter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	start := time.Now()
	chain.ProcessFilter(req, resp)

	status := resp.StatusCode()
	if status == 0 {
		status = 200
	}
	labels := []string{req.Request.Method, normalizePath(req.SelectedRoutePath()), strconv.Itoa(status)}

	m.httpRequests.WithLabelValues(labels...).Inc()
	m.httpDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
}

// normalizePath keeps label cardinality bounded for unmatched routes.
func normalizePath(path string) string {
	if path == "" {
		return "unknown"
	}
	return path
}
