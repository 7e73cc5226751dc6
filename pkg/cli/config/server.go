package config

import (
	"log/slog"
	"net/http"
	"time"

	controller "github.com/secmon-lab/sirse/pkg/controller/http"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr          string
	BaseURL       string
	CORSOrigin    string
	StaticDir     string
	SessionIdle   time.Duration
	SweepInterval time.Duration
}

// Flags returns CLI flags for Server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Sources:     cli.EnvVars("SIRSE_ADDR"),
			Destination: &s.Addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Public base URL of the service (if not set, automatically detected from request headers)",
			Sources:     cli.EnvVars("SIRSE_BASE_URL"),
			Destination: &s.BaseURL,
		},
		&cli.StringFlag{
			Name:        "cors-origin",
			Usage:       "Origin allowed to call the API from a browser",
			Sources:     cli.EnvVars("SIRSE_CORS_ORIGIN"),
			Destination: &s.CORSOrigin,
		},
		&cli.StringFlag{
			Name:        "static-dir",
			Usage:       "Directory of the web map viewer to serve on /",
			Sources:     cli.EnvVars("SIRSE_STATIC_DIR"),
			Destination: &s.StaticDir,
		},
		&cli.DurationFlag{
			Name:        "session-idle-timeout",
			Usage:       "Close heat map sessions not accessed for this long",
			Value:       30 * time.Minute,
			Sources:     cli.EnvVars("SIRSE_SESSION_IDLE_TIMEOUT"),
			Destination: &s.SessionIdle,
		},
		&cli.DurationFlag{
			Name:        "session-sweep-interval",
			Usage:       "Interval between idle session sweeps",
			Value:       time.Minute,
			Sources:     cli.EnvVars("SIRSE_SESSION_SWEEP_INTERVAL"),
			Destination: &s.SweepInterval,
		},
	}
}

// Configure returns the HTTP server configuration
func (s *Server) Configure(extra ...controller.ConfigOption) *controller.Config {
	var opts []controller.ConfigOption
	if s.BaseURL != "" {
		opts = append(opts, controller.WithBaseURL(s.BaseURL))
	}
	if s.CORSOrigin != "" {
		opts = append(opts, controller.WithCORSOrigin(s.CORSOrigin))
	}
	if s.StaticDir != "" {
		opts = append(opts, controller.WithStaticFiles(http.Dir(s.StaticDir)))
	}
	return controller.NewConfig(s.Addr, append(opts, extra...)...)
}

// LogValue returns structured log value
func (s Server) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", s.Addr),
		slog.String("base_url", s.BaseURL),
		slog.String("cors_origin", s.CORSOrigin),
		slog.String("static_dir", s.StaticDir),
		slog.Duration("session_idle_timeout", s.SessionIdle),
		slog.Duration("session_sweep_interval", s.SweepInterval),
	)
}
