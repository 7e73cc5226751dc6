// Package metrics exposes prometheus instrumentation for HTTP requests, report fetching,
// geocoding and heat map sessions. A nil *Recorder is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects sirse metrics on its own registry
type Recorder struct {
	registry *prometheus.Registry

	httpRequestsTotal  *prometheus.CounterVec
	httpRequestSeconds *prometheus.HistogramVec

	apiRequestsTotal  *prometheus.CounterVec
	apiRequestSeconds *prometheus.HistogramVec
	malformedReports  prometheus.Counter

	geocodeLookups *prometheus.CounterVec

	heatmapSessions  prometheus.Gauge
	heatmapStale     prometheus.Counter
	heatmapRecompute prometheus.Histogram
	heatmapClusters  prometheus.Histogram
}

// New creates a Recorder with a fresh registry
func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sirse_http_requests_total",
				Help: "Total number of HTTP requests served by route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sirse_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		apiRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sirse_report_api_requests_total",
				Help: "Total number of report API requests",
			},
			[]string{"endpoint", "outcome"},
		),
		apiRequestSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sirse_report_api_request_duration_seconds",
				Help:    "Report API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		malformedReports: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sirse_malformed_reports_total",
				Help: "Reports dropped because they could not be decoded or validated",
			},
		),

		geocodeLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sirse_geocode_lookups_total",
				Help: "Reverse geocoding lookups by result",
			},
			[]string{"result"},
		),

		heatmapSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sirse_heatmap_sessions",
				Help: "Number of open heat map sessions",
			},
		),
		heatmapStale: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sirse_heatmap_stale_responses_total",
				Help: "Fetch results discarded because a newer fetch was issued",
			},
		),
		heatmapRecompute: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sirse_heatmap_recompute_duration_seconds",
				Help:    "Duration of filter and cluster passes",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
		heatmapClusters: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sirse_heatmap_clusters",
				Help:    "Number of clusters produced per recompute",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one request served by the HTTP surface. route
// is the route pattern, not the raw path.
func (r *Recorder) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpRequestSeconds.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveAPIRequest records one report API call
func (r *Recorder) ObserveAPIRequest(endpoint string, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.apiRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	r.apiRequestSeconds.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// AddMalformedReports counts reports dropped at decode time
func (r *Recorder) AddMalformedReports(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.malformedReports.Add(float64(n))
}

// Geocode lookup results
const (
	GeocodeHit   = "hit"
	GeocodeMiss  = "miss"
	GeocodeError = "error"
)

// ObserveGeocode records a geocode lookup result
func (r *Recorder) ObserveGeocode(result string) {
	if r == nil {
		return
	}
	r.geocodeLookups.WithLabelValues(result).Inc()
}

// SetHeatmapSessions sets the number of open heat map sessions
func (r *Recorder) SetHeatmapSessions(n int) {
	if r == nil {
		return
	}
	r.heatmapSessions.Set(float64(n))
}

// IncStaleResponse counts a discarded stale fetch result
func (r *Recorder) IncStaleResponse() {
	if r == nil {
		return
	}
	r.heatmapStale.Inc()
}

// ObserveRecompute records one filter and cluster pass
func (r *Recorder) ObserveRecompute(elapsed time.Duration, clusters int) {
	if r == nil {
		return
	}
	r.heatmapRecompute.Observe(elapsed.Seconds())
	r.heatmapClusters.Observe(float64(clusters))
}
