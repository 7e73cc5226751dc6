package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
)

const (
	// DefaultReportAPITimeout bounds every report API call
	DefaultReportAPITimeout = 10 * time.Second

	endpointAllReports       = "get_all_reports.php"
	endpointReportByID       = "get_report_by_id.php"
	endpointPaginatedReports = "get_paginated_reports.php"
	endpointReportsByArea    = "get_reports_by_area.php"
	endpointCategories       = "get_categories.php"
	endpointStatuses         = "get_statuses.php"

	maxResponseBytes = 32 << 20
)

// ReportAPI implements ReportRepository over the municipal PHP endpoints.
// Requests are plain unauthenticated GETs and are never retried.
type ReportAPI struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	metrics *metrics.Recorder
}

var _ interfaces.ReportRepository = (*ReportAPI)(nil)

// ReportAPIOption is a functional option for configuring ReportAPI
type ReportAPIOption func(*ReportAPI)

// WithHTTPClient replaces the HTTP client. The client is copied and its
// timeout is replaced by the request timeout; a nil client is ignored.
func WithHTTPClient(client *http.Client) ReportAPIOption {
	return func(r *ReportAPI) {
		r.client = client
	}
}

// WithTimeout sets the per request timeout
func WithTimeout(timeout time.Duration) ReportAPIOption {
	return func(r *ReportAPI) {
		r.timeout = timeout
	}
}

// WithMetrics records request metrics
func WithMetrics(recorder *metrics.Recorder) ReportAPIOption {
	return func(r *ReportAPI) {
		r.metrics = recorder
	}
}

// NewReportAPI creates a new report API client
func NewReportAPI(baseURL string, opts ...ReportAPIOption) (*ReportAPI, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("invalid report API base URL", goerr.V("baseURL", baseURL))
	}

	api := &ReportAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultReportAPITimeout,
	}
	for _, opt := range opts {
		opt(api)
	}

	var client http.Client
	if api.client != nil {
		client = *api.client
	}
	client.Timeout = api.timeout
	api.client = &client
	return api, nil
}

// GetAllReports fetches every report, optionally filtered by API category and status
func (r *ReportAPI) GetAllReports(ctx context.Context, query model.ReportQuery) ([]*model.Report, error) {
	params := url.Values{}
	setReportQuery(params, query.Category, query.Status)

	body, err := r.get(ctx, endpointAllReports, params)
	if err != nil {
		return nil, err
	}
	return r.decodeReportList(ctx, endpointAllReports, body)
}

// GetReportByID fetches a single report. The endpoint answers with an
// array, empty when the report does not exist.
func (r *ReportAPI) GetReportByID(ctx context.Context, id types.ReportID) (*model.Report, error) {
	if id == "" {
		return nil, goerr.New("report ID is empty")
	}

	params := url.Values{}
	params.Set("id", id.String())

	body, err := r.get(ctx, endpointReportByID, params)
	if err != nil {
		return nil, err
	}
	reports, err := r.decodeReportList(ctx, endpointReportByID, body)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, goerr.Wrap(model.ErrReportNotFound, "failed to get report", goerr.V("id", id))
	}
	return reports[0], nil
}

type wirePage struct {
	Data       []json.RawMessage `json:"data"`
	Page       flexInt           `json:"page"`
	Limit      flexInt           `json:"limit"`
	Total      flexInt           `json:"total"`
	TotalPages flexInt           `json:"totalPages"`
	HasMore    bool              `json:"hasMore"`
}

// GetPaginatedReports fetches one page of reports
func (r *ReportAPI) GetPaginatedReports(ctx context.Context, query model.PageQuery) (*model.ReportPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(max(query.Page, 1)))
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	setReportQuery(params, query.Category, query.Status)

	body, err := r.get(ctx, endpointPaginatedReports, params)
	if err != nil {
		return nil, err
	}

	var page wirePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, goerr.Wrap(err, "failed to decode paginated reports",
			goerr.V("endpoint", endpointPaginatedReports),
			goerr.T(model.TagNetworkFailure))
	}

	return &model.ReportPage{
		Data:       r.decodeAndCount(ctx, endpointPaginatedReports, page.Data),
		Page:       int(page.Page),
		Limit:      int(page.Limit),
		Total:      int(page.Total),
		TotalPages: int(page.TotalPages),
		HasMore:    page.HasMore,
	}, nil
}

// GetReportsByArea fetches reports inside a bounding box
func (r *ReportAPI) GetReportsByArea(ctx context.Context, query model.AreaQuery) ([]*model.Report, error) {
	params := url.Values{}
	params.Set("ne_lat", formatCoordinate(query.Bounds.NorthEast.Latitude))
	params.Set("ne_lng", formatCoordinate(query.Bounds.NorthEast.Longitude))
	params.Set("sw_lat", formatCoordinate(query.Bounds.SouthWest.Latitude))
	params.Set("sw_lng", formatCoordinate(query.Bounds.SouthWest.Longitude))
	setReportQuery(params, query.Category, query.Status)
	if query.TimeRange != "" {
		params.Set("timeRange", query.TimeRange.String())
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	body, err := r.get(ctx, endpointReportsByArea, params)
	if err != nil {
		return nil, err
	}
	return r.decodeReportList(ctx, endpointReportsByArea, body)
}

// GetCategories fetches the API category vocabulary
func (r *ReportAPI) GetCategories(ctx context.Context) ([]string, error) {
	body, err := r.get(ctx, endpointCategories, nil)
	if err != nil {
		return nil, err
	}
	return decodeVocabulary(endpointCategories, body)
}

// GetStatuses fetches the status vocabulary
func (r *ReportAPI) GetStatuses(ctx context.Context) ([]string, error) {
	body, err := r.get(ctx, endpointStatuses, nil)
	if err != nil {
		return nil, err
	}
	return decodeVocabulary(endpointStatuses, body)
}

func (r *ReportAPI) get(ctx context.Context, endpoint string, params url.Values) (body []byte, err error) {
	start := time.Now()
	defer func() {
		r.metrics.ObserveAPIRequest(endpoint, time.Since(start), err)
	}()

	reqURL := r.baseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create report API request", goerr.V("url", reqURL))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "report API request failed",
			goerr.V("url", reqURL),
			goerr.T(model.TagNetworkFailure))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("report API returned error status",
			goerr.V("url", reqURL),
			goerr.V("status", resp.StatusCode),
			goerr.T(model.TagNetworkFailure))
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read report API response",
			goerr.V("url", reqURL),
			goerr.T(model.TagNetworkFailure))
	}

	ctxlog.From(ctx).Debug("report API response",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return body, nil
}

func (r *ReportAPI) decodeReportList(ctx context.Context, endpoint string, body []byte) ([]*model.Report, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to decode report list",
			goerr.V("endpoint", endpoint),
			goerr.T(model.TagNetworkFailure))
	}
	return r.decodeAndCount(ctx, endpoint, raw), nil
}

func (r *ReportAPI) decodeAndCount(ctx context.Context, endpoint string, raw []json.RawMessage) []*model.Report {
	reports, dropped := decodeReports(ctx, endpoint, raw)
	r.metrics.AddMalformedReports(dropped)
	return reports
}

// decodeReports decodes every element on its own so that one malformed
// report does not hide the rest. It returns the kept reports and the number
// of dropped elements.
func decodeReports(ctx context.Context, source string, raw []json.RawMessage) ([]*model.Report, int) {
	reports := make([]*model.Report, 0, len(raw))
	dropped := 0
	for i, msg := range raw {
		report, err := decodeReport(msg)
		if err != nil {
			dropped++
			ctxlog.From(ctx).Debug("dropping malformed report",
				"source", source,
				"index", i,
				"error", err,
			)
			continue
		}
		reports = append(reports, report)
	}

	if dropped > 0 {
		ctxlog.From(ctx).Warn("malformed reports excluded",
			"source", source,
			"dropped", dropped,
			"kept", len(reports),
		)
	}
	return reports, dropped
}

func setReportQuery(params url.Values, category string, status types.ReportStatus) {
	if category != "" {
		params.Set("category", category)
	}
	if status != "" {
		params.Set("status", status.String())
	}
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func decodeVocabulary(endpoint string, body []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(body, &names); err == nil {
		return names, nil
	}

	var objects []struct {
		Name   string `json:"name"`
		Nombre string `json:"nombre"`
	}
	if err := json.Unmarshal(body, &objects); err != nil {
		return nil, goerr.Wrap(err, "failed to decode vocabulary",
			goerr.V("endpoint", endpoint),
			goerr.T(model.TagNetworkFailure))
	}

	names = make([]string, 0, len(objects))
	for _, o := range objects {
		switch {
		case o.Name != "":
			names = append(names, o.Name)
		case o.Nombre != "":
			names = append(names, o.Nombre)
		}
	}
	return names, nil
}
