package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	slackctrl "github.com/secmon-lab/sirse/pkg/controller/slack"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/usecase"
	"github.com/secmon-lab/sirse/pkg/utils/apperr"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
)

// errInvalidRequest marks requests rejected before reaching a use case
var errInvalidRequest = goerr.New("invalid request")

// Config holds the HTTP server settings
type Config struct {
	addr       string
	baseURL    string
	corsOrigin string
	static     http.FileSystem

	slackSigningSecret string
}

// ConfigOption is a functional option for Config
type ConfigOption func(*Config)

// WithBaseURL sets the public base URL used in Location headers
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.baseURL = baseURL
	}
}

// WithCORSOrigin allows cross-origin API calls from origin
func WithCORSOrigin(origin string) ConfigOption {
	return func(c *Config) {
		c.corsOrigin = origin
	}
}

// WithStaticFiles serves the web map viewer from fs
func WithStaticFiles(fs http.FileSystem) ConfigOption {
	return func(c *Config) {
		c.static = fs
	}
}

// WithSlackSigningSecret enables the Slack slash command endpoint
func WithSlackSigningSecret(secret string) ConfigOption {
	return func(c *Config) {
		c.slackSigningSecret = secret
	}
}

// NewConfig creates a server configuration
func NewConfig(addr string, opts ...ConfigOption) *Config {
	c := &Config{addr: addr}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UseCases bundles the use cases exposed over HTTP
type UseCases struct {
	reports  *usecase.Reports
	feed     *usecase.Feed
	heatmaps *usecase.HeatmapSessions
}

// NewUseCases creates a new UseCases instance
func NewUseCases(reports *usecase.Reports, feed *usecase.Feed, heatmaps *usecase.HeatmapSessions) *UseCases {
	return &UseCases{
		reports:  reports,
		feed:     feed,
		heatmaps: heatmaps,
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router chi.Router
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, config *Config, useCases *UseCases, recorder *metrics.Recorder) (*Server, error) {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(AccessLogMiddleware(ctx, recorder))
	router.Use(middleware.Recoverer)

	reportHandler := NewReportHandler(useCases.reports, useCases.feed)
	heatmapHandler := NewHeatmapHandler(useCases.heatmaps, config.baseURL)

	router.Get("/health", handleHealth)
	router.Handle("/metrics", recorder.Handler())

	router.Route("/api", func(r chi.Router) {
		if config.corsOrigin != "" {
			r.Use(CORSMiddleware(config.corsOrigin))
		}

		r.Get("/categories", reportHandler.HandleCategories)
		r.Get("/statuses", reportHandler.HandleStatuses)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", reportHandler.HandleList)
			r.Get("/{id}", reportHandler.HandleDetail)
			r.Post("/{id}/share", reportHandler.HandleShare)
		})

		r.Route("/heatmap", func(r chi.Router) {
			r.Post("/", heatmapHandler.HandleCreate)
			r.Get("/{id}", heatmapHandler.HandleGet)
			r.Delete("/{id}", heatmapHandler.HandleDelete)
			r.Put("/{id}/region", heatmapHandler.HandleRegion)
			r.Put("/{id}/category", heatmapHandler.HandleCategory)
			r.Put("/{id}/time-range", heatmapHandler.HandleTimeRange)
			r.Post("/{id}/refresh", heatmapHandler.HandleRefresh)
		})
	})

	if config.slackSigningSecret != "" {
		slackHandler := slackctrl.NewHandler(config.slackSigningSecret, useCases.reports, useCases.feed)
		router.Route("/hooks/slack", func(r chi.Router) {
			r.Post("/command", slackHandler.HandleCommand)
		})
	}

	if config.static != nil {
		static, err := NewStaticHandler(config.static)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create web viewer handler")
		}
		ctxlog.From(ctx).Info("Serving web viewer")
		router.Handle("/*", static)
	}

	return &Server{
		Server: &http.Server{
			Addr:              config.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router: router,
	}, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sirse",
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrReportNotFound),
		errors.Is(err, model.ErrHeatmapNotFound):
		return http.StatusNotFound

	case errors.Is(err, errInvalidRequest),
		errors.Is(err, model.ErrInvalidFilter),
		errors.Is(err, model.ErrInvalidTimeRange),
		errors.Is(err, model.ErrInvalidBounds),
		errors.Is(err, model.ErrCategoryNotFound):
		return http.StatusBadRequest

	case errors.Is(err, model.ErrShareNotConfigured):
		return http.StatusServiceUnavailable

	case goerr.HasTag(err, model.TagNetworkFailure):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// writeError writes an error response. Only unexpected errors are logged as
// application errors; the others are the client's or upstream's.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		apperr.Handle(r.Context(), err)
	} else {
		ctxlog.From(r.Context()).Debug("Request failed", "status", status, "error", err)
	}

	writeJSON(w, r, status, map[string]string{
		"error": err.Error(),
	})
}

// decodeBody decodes a JSON request body into v
func decodeBody(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return goerr.Wrap(errInvalidRequest, "failed to decode request body", goerr.V("error", err.Error()))
	}
	return nil
}
