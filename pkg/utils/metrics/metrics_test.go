package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
)

func TestRecorder(t *testing.T) {
	t.Run("exposes recorded values", func(t *testing.T) {
		r := metrics.New()
		r.ObserveAPIRequest("get_all_reports", 10*time.Millisecond, nil)
		r.ObserveAPIRequest("get_all_reports", 10*time.Millisecond, errors.New("boom"))
		r.AddMalformedReports(3)
		r.ObserveGeocode(metrics.GeocodeHit)
		r.SetHeatmapSessions(2)
		r.IncStaleResponse()
		r.ObserveRecompute(time.Millisecond, 4)
		r.ObserveHTTPRequest(http.MethodGet, "/api/reports/{id}", http.StatusNotFound, time.Millisecond)

		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		gt.Equal(t, http.StatusOK, rec.Code)

		body, err := io.ReadAll(rec.Body)
		gt.NoError(t, err).Required()
		text := string(body)
		gt.S(t, text).Contains(`sirse_report_api_requests_total{endpoint="get_all_reports",outcome="success"} 1`)
		gt.S(t, text).Contains(`sirse_report_api_requests_total{endpoint="get_all_reports",outcome="error"} 1`)
		gt.S(t, text).Contains("sirse_malformed_reports_total 3")
		gt.S(t, text).Contains(`sirse_geocode_lookups_total{result="hit"} 1`)
		gt.S(t, text).Contains("sirse_heatmap_sessions 2")
		gt.S(t, text).Contains("sirse_heatmap_stale_responses_total 1")
		gt.S(t, text).Contains(`sirse_http_requests_total{method="GET",route="/api/reports/{id}",status="404"} 1`)
	})

	t.Run("nil recorder is a no-op", func(t *testing.T) {
		var r *metrics.Recorder
		r.ObserveAPIRequest("x", time.Second, nil)
		r.AddMalformedReports(1)
		r.ObserveGeocode(metrics.GeocodeMiss)
		r.SetHeatmapSessions(1)
		r.IncStaleResponse()
		r.ObserveRecompute(time.Second, 1)
		r.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Second)

		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		gt.Equal(t, http.StatusNotFound, rec.Code)
	})
}
