package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/repository"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
	"github.com/urfave/cli/v3"
)

// ReportAPI holds the report source configuration
type ReportAPI struct {
	URL      string
	Timeout  time.Duration
	SeedFile string
}

// Flags returns CLI flags for ReportAPI configuration
func (r *ReportAPI) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "report-api-url",
			Usage:       "Base URL of the report API",
			Category:    "Report API",
			Sources:     cli.EnvVars("SIRSE_REPORT_API_URL"),
			Destination: &r.URL,
		},
		&cli.DurationFlag{
			Name:        "report-api-timeout",
			Usage:       "Timeout of a report API request",
			Category:    "Report API",
			Value:       repository.DefaultReportAPITimeout,
			Sources:     cli.EnvVars("SIRSE_REPORT_API_TIMEOUT"),
			Destination: &r.Timeout,
		},
		&cli.StringFlag{
			Name:        "report-seed-file",
			Usage:       "JSON file of reports served from memory instead of the report API",
			Category:    "Report API",
			Sources:     cli.EnvVars("SIRSE_REPORT_SEED_FILE"),
			Destination: &r.SeedFile,
		},
	}
}

// Configure creates the report repository. A seed file takes precedence
// over the API URL.
func (r *ReportAPI) Configure(ctx context.Context, recorder *metrics.Recorder) (interfaces.ReportRepository, error) {
	if r.SeedFile != "" {
		ctxlog.From(ctx).Warn("Serving reports from seed file instead of the report API",
			"file", r.SeedFile,
		)
		return repository.LoadMemoryFromFile(ctx, r.SeedFile)
	}

	if r.URL == "" {
		return nil, goerr.New("report API URL is required. Please provide SIRSE_REPORT_API_URL or SIRSE_REPORT_SEED_FILE")
	}

	api, err := repository.NewReportAPI(r.URL,
		repository.WithTimeout(r.Timeout),
		repository.WithMetrics(recorder),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create report API client", goerr.V("url", r.URL))
	}
	return api, nil
}

// LogValue returns structured log value
func (r ReportAPI) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", r.URL),
		slog.Duration("timeout", r.Timeout),
		slog.String("seed_file", r.SeedFile),
	)
}
