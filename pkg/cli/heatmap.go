package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/cli/config"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdHeatmap() *cli.Command {
	var (
		reportAPICfg  config.ReportAPI
		categoriesCfg config.Categories
		locationCfg   config.Location
		heatmapCfg    config.Heatmap
		output        config.Output
		categoryID    string
	)

	flags := joinFlags(
		reportAPICfg.Flags(),
		categoriesCfg.Flags(),
		locationCfg.Flags(),
		heatmapCfg.Flags(),
		output.Flags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "category",
				Usage:       "Display category ID to show",
				Sources:     cli.EnvVars("SIRSE_HEATMAP_CATEGORY"),
				Destination: &categoryID,
			},
		},
	)

	return &cli.Command{
		Name:  "heatmap",
		Usage: "Compute the heat map around the user location once and print it",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := output.Validate(); err != nil {
				return err
			}
			ctxlog.From(ctx).Debug("Computing heat map",
				slog.Any("reportAPI", reportAPICfg),
				slog.Any("location", locationCfg),
				slog.Any("heatmap", heatmapCfg),
				slog.String("category", categoryID),
			)

			repo, err := reportAPICfg.Configure(ctx, nil)
			if err != nil {
				return err
			}
			taxonomy, err := categoriesCfg.Configure()
			if err != nil {
				return err
			}
			resolver, err := locationCfg.Configure()
			if err != nil {
				return err
			}
			heatmapConfig, clusterer, err := heatmapCfg.Configure(nil)
			if err != nil {
				return err
			}

			heatmap := usecase.NewHeatmap(repo, resolver, taxonomy, clusterer, heatmapConfig)
			defer heatmap.Close()

			if err := heatmap.Mount(ctx); err != nil {
				return goerr.Wrap(err, "failed to compute heat map")
			}
			if categoryID != "" {
				if err := heatmap.ToggleCategory(categoryID); err != nil {
					return err
				}
			}

			view := heatmap.View()
			if output.IsJSON() {
				return output.WriteJSON(c.Root().Writer, view)
			}
			return writeHeatmapText(c.Root().Writer, view)
		},
	}
}

func writeHeatmapText(w io.Writer, view *model.HeatmapView) error {
	lines := []string{
		fmt.Sprintf("Ubicación: %s", view.Location.Label()),
		fmt.Sprintf("Periodo: %s", view.TimeRange.Label()),
	}
	if view.Category != nil {
		lines = append(lines, fmt.Sprintf("Categoría: %s", view.Category.Name))
	}
	if view.Message != "" {
		lines = append(lines, view.Message)
	}
	if view.ErrorMessage != "" {
		lines = append(lines, view.ErrorMessage)
	}
	lines = append(lines, fmt.Sprintf("Reportes visibles: %d de %d", view.VisibleCount, view.TotalCount))

	for _, c := range view.Clusters {
		lines = append(lines, fmt.Sprintf("  %s  %d reporte(s)  intensidad %.2f  %s",
			c.Center.Label(), c.Count, c.Intensity, c.Color))
	}
	for _, s := range view.Stats {
		lines = append(lines, fmt.Sprintf("  %-24s %3d  %5.1f%%", s.Category.Name, s.Count, s.Percentage))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return goerr.Wrap(err, "failed to write heat map")
		}
	}
	return nil
}
