package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/cli/config"
	controller "github.com/secmon-lab/sirse/pkg/controller/http"
	"github.com/secmon-lab/sirse/pkg/usecase"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg     config.Server
		reportAPICfg  config.ReportAPI
		categoriesCfg config.Categories
		geocoderCfg   config.Geocoder
		cacheCfg      config.Cache
		locationCfg   config.Location
		heatmapCfg    config.Heatmap
		slackCfg      config.Slack
	)

	flags := joinFlags(
		serverCfg.Flags(),
		reportAPICfg.Flags(),
		categoriesCfg.Flags(),
		geocoderCfg.Flags(),
		cacheCfg.Flags(),
		locationCfg.Flags(),
		heatmapCfg.Flags(),
		slackCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting sirse server",
				slog.Any("server", serverCfg),
				slog.Any("reportAPI", reportAPICfg),
				slog.Any("categories", categoriesCfg),
				slog.Any("geocoder", geocoderCfg),
				slog.Any("cache", cacheCfg),
				slog.Any("location", locationCfg),
				slog.Any("heatmap", heatmapCfg),
				slog.Any("slack", slackCfg),
			)

			recorder := metrics.New()

			repo, err := reportAPICfg.Configure(ctx, recorder)
			if err != nil {
				return err
			}
			taxonomy, err := categoriesCfg.Configure()
			if err != nil {
				return err
			}

			cache, err := cacheCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Warn("Failed to close address cache", "error", err)
				}
			}()

			geocoder, err := geocoderCfg.Configure(ctx, cache, recorder)
			if err != nil {
				return err
			}
			resolver, err := locationCfg.Configure()
			if err != nil {
				return err
			}
			heatmapConfig, clusterer, err := heatmapCfg.Configure(recorder)
			if err != nil {
				return err
			}

			// Create use cases
			reportsUC := usecase.NewReports(repo, geocoder, taxonomy, slackCfg.Configure(ctx), nil)
			feedUC := usecase.NewFeed(repo, taxonomy, resolver)
			sessions := usecase.NewHeatmapSessions(func() *usecase.Heatmap {
				return usecase.NewHeatmap(repo, resolver, taxonomy, clusterer, heatmapConfig)
			}, recorder)

			server, err := controller.NewServer(ctx,
				serverCfg.Configure(controller.WithSlackSigningSecret(slackCfg.SigningSecret)),
				controller.NewUseCases(reportsUC, feedUC, sessions),
				recorder,
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			sweepCtx, stopSweep := context.WithCancel(ctx)
			defer stopSweep()
			go sweepSessions(sweepCtx, sessions, serverCfg.SweepInterval, serverCfg.SessionIdle)

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// sweepSessions closes idle heat map sessions until ctx is cancelled
func sweepSessions(ctx context.Context, sessions *usecase.HeatmapSessions, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.Sweep(ctx, maxIdle)
		}
	}
}
