package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/secmon-lab/sirse/pkg/usecase"
	"github.com/secmon-lab/sirse/pkg/utils/async"
)

// HeatmapHandler exposes heat map sessions. Work that fetches reports runs
// in the background and the response carries the view at the time it was
// accepted; clients poll GET for the result. With wait=true the response is
// sent once the work has finished.
type HeatmapHandler struct {
	sessions *usecase.HeatmapSessions
	baseURL  string
}

// NewHeatmapHandler creates a new HeatmapHandler
func NewHeatmapHandler(sessions *usecase.HeatmapSessions, baseURL string) *HeatmapHandler {
	return &HeatmapHandler{
		sessions: sessions,
		baseURL:  baseURL,
	}
}

type heatmapResponse struct {
	ID types.HeatmapSessionID `json:"id"`
	*model.HeatmapView
}

type regionRequest struct {
	NorthEast model.Coordinates `json:"northEast"`
	SouthWest model.Coordinates `json:"southWest"`
	// Settled applies the region immediately instead of after the quiet period
	Settled bool `json:"settled"`
}

type categoryRequest struct {
	CategoryID string `json:"categoryId"`
}

type timeRangeRequest struct {
	TimeRange string `json:"timeRange"`
}

// HandleCreate opens a session and mounts it
func (h *HeatmapHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, heatmap := h.sessions.Open()

	waitIfRequested(r, async.Dispatch(r.Context(), "heatmap_mount", heatmap.Mount))

	w.Header().Set("Location", ResolveBaseURL(r, h.baseURL)+"/api/heatmap/"+id.String())
	writeJSON(w, r, http.StatusCreated, heatmapResponse{ID: id, HeatmapView: heatmap.View()})
}

// HandleGet returns the current view of a session
func (h *HeatmapHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, heatmap, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, heatmapResponse{ID: id, HeatmapView: heatmap.View()})
}

// HandleDelete closes a session
func (h *HeatmapHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := types.HeatmapSessionID(chi.URLParam(r, "id"))
	if err := h.sessions.Close(id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRegion moves the viewport. An unsettled region is applied after
// the quiet period and answered with 202.
func (h *HeatmapHandler) HandleRegion(w http.ResponseWriter, r *http.Request) {
	id, heatmap, ok := h.session(w, r)
	if !ok {
		return
	}

	var req regionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	bounds := model.GeographicBounds{NorthEast: req.NorthEast, SouthWest: req.SouthWest}

	if req.Settled {
		if err := heatmap.RegionSettled(bounds); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, heatmapResponse{ID: id, HeatmapView: heatmap.View()})
		return
	}

	if err := heatmap.RegionChanged(bounds); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, heatmapResponse{ID: id, HeatmapView: heatmap.View()})
}

// HandleCategory toggles the category selection
func (h *HeatmapHandler) HandleCategory(w http.ResponseWriter, r *http.Request) {
	id, heatmap, ok := h.session(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := heatmap.ToggleCategory(req.CategoryID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, heatmapResponse{ID: id, HeatmapView: heatmap.View()})
}

// HandleTimeRange selects a time range and refetches
func (h *HeatmapHandler) HandleTimeRange(w http.ResponseWriter, r *http.Request) {
	id, heatmap, ok := h.session(w, r)
	if !ok {
		return
	}

	var req timeRangeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	tr := model.TimeRange(req.TimeRange)
	if !tr.IsValid() {
		writeError(w, r, model.ErrInvalidTimeRange)
		return
	}

	job := async.Dispatch(r.Context(), "heatmap_time_range", func(ctx context.Context) error {
		return heatmap.SetTimeRange(ctx, tr)
	})
	waitIfRequested(r, job)

	writeJSON(w, r, http.StatusAccepted, heatmapResponse{ID: id, HeatmapView: heatmap.View()})
}

// HandleRefresh refetches the reports of a session
func (h *HeatmapHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	id, heatmap, ok := h.session(w, r)
	if !ok {
		return
	}

	job := async.Dispatch(r.Context(), "heatmap_refresh", func(ctx context.Context) error {
		heatmap.Refresh(ctx)
		return nil
	})
	waitIfRequested(r, job)

	writeJSON(w, r, http.StatusAccepted, heatmapResponse{ID: id, HeatmapView: heatmap.View()})
}

func (h *HeatmapHandler) session(w http.ResponseWriter, r *http.Request) (types.HeatmapSessionID, *usecase.Heatmap, bool) {
	id := types.HeatmapSessionID(chi.URLParam(r, "id"))
	heatmap, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, r, err)
		return "", nil, false
	}
	return id, heatmap, true
}

// waitIfRequested blocks until the job finishes when the request asks for
// it, or until the client goes away. A failed job is already logged and
// its outcome is part of the view.
func waitIfRequested(r *http.Request, job *async.Job) {
	if r.URL.Query().Get("wait") != "true" {
		return
	}
	_ = job.Wait(r.Context())
}
