package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/secmon-lab/sirse/pkg/usecase"
)

// ReportHandler serves the report feed, report details and vocabularies
type ReportHandler struct {
	reports *usecase.Reports
	feed    *usecase.Feed
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *usecase.Reports, feed *usecase.Feed) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		feed:    feed,
	}
}

// HandleCategories returns the display categories
func (h *ReportHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"categories": h.reports.Categories(),
	})
}

// HandleStatuses returns the status vocabulary with badge colors
func (h *ReportHandler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.reports.Statuses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"statuses": statuses,
	})
}

// HandleList returns one page of the report feed.
//
// Query: filter=all|category|status|nearby|recent, value, page, limit, and
// lat/lng of the user. For nearby, radius_km is accepted in place of value.
func (h *ReportHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	value := q.Get("value")
	if value == "" && q.Get("filter") == string(model.FilterKindNearby) {
		value = q.Get("radius_km")
	}
	filter, err := model.ParseFilter(q.Get("filter"), value)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := intParam(q, "page")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := intParam(q, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	origin, err := originParam(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.feed.List(r.Context(), usecase.FeedRequest{
		Filter: filter,
		Page:   page,
		Limit:  limit,
		Origin: origin,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// HandleDetail returns a report with its resolved address. lat/lng, when
// given, are used for the distance.
func (h *ReportHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	origin, err := originParam(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	detail, err := h.reports.Detail(r.Context(), types.ReportID(chi.URLParam(r, "id")), origin)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, detail)
}

// HandleShare posts the share message of a report to Slack
func (h *ReportHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	result, err := h.reports.Share(r.Context(), types.ReportID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// intParam returns 0 for an absent parameter
func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, goerr.Wrap(errInvalidRequest, "invalid integer parameter",
			goerr.V("name", name),
			goerr.V("value", raw))
	}
	return v, nil
}

// originParam returns nil when neither lat nor lng is given
func originParam(q url.Values) (*model.Coordinates, error) {
	lat, lng := q.Get("lat"), q.Get("lng")
	if lat == "" && lng == "" {
		return nil, nil
	}

	latV, latErr := strconv.ParseFloat(lat, 64)
	lngV, lngErr := strconv.ParseFloat(lng, 64)
	origin := model.Coordinates{Latitude: latV, Longitude: lngV}
	if latErr != nil || lngErr != nil || !origin.IsValid() {
		return nil, goerr.Wrap(errInvalidRequest, "invalid coordinates",
			goerr.V("lat", lat),
			goerr.V("lng", lng))
	}
	return &origin, nil
}
