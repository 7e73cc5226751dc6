package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/service/cluster"
	"github.com/secmon-lab/sirse/pkg/usecase"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
	"github.com/urfave/cli/v3"
)

// Heatmap holds heat map configuration
type Heatmap struct {
	RadiusKm       float64
	TimeRange      string
	RegionDebounce time.Duration
	ClusterRadius  float64
}

// Flags returns CLI flags for Heatmap configuration
func (h *Heatmap) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:        "radius-km",
			Usage:       "Half size of the initial viewport around the user location",
			Category:    "Heatmap",
			Value:       usecase.DefaultHeatmapRadiusKm,
			Sources:     cli.EnvVars("SIRSE_HEATMAP_RADIUS_KM"),
			Destination: &h.RadiusKm,
		},
		&cli.StringFlag{
			Name:        "time-range",
			Usage:       "Initial time range (24h, 7d, 30d)",
			Category:    "Heatmap",
			Value:       string(model.DefaultTimeRange),
			Sources:     cli.EnvVars("SIRSE_HEATMAP_TIME_RANGE"),
			Destination: &h.TimeRange,
		},
		&cli.DurationFlag{
			Name:        "region-debounce",
			Usage:       "Quiet period before a moving viewport is applied",
			Category:    "Heatmap",
			Value:       usecase.DefaultRegionDebounce,
			Sources:     cli.EnvVars("SIRSE_HEATMAP_REGION_DEBOUNCE"),
			Destination: &h.RegionDebounce,
		},
		&cli.FloatFlag{
			Name:        "cluster-radius",
			Usage:       "Join distance of clustering in degrees",
			Category:    "Heatmap",
			Value:       cluster.DefaultRadiusDegrees,
			Sources:     cli.EnvVars("SIRSE_HEATMAP_CLUSTER_RADIUS"),
			Destination: &h.ClusterRadius,
		},
	}
}

// Configure returns the heat map configuration and the clusterer
func (h *Heatmap) Configure(recorder *metrics.Recorder) (*usecase.HeatmapConfig, *cluster.Clusterer, error) {
	tr, err := model.ParseTimeRange(h.TimeRange)
	if err != nil {
		return nil, nil, err
	}
	if h.ClusterRadius <= 0 {
		return nil, nil, goerr.New("cluster radius must be positive", goerr.V("radius", h.ClusterRadius))
	}

	config := usecase.NewHeatmapConfig(
		usecase.WithInitialRadius(h.RadiusKm),
		usecase.WithInitialTimeRange(tr),
		usecase.WithRegionDebounce(h.RegionDebounce),
		usecase.WithHeatmapMetrics(recorder),
	)
	return config, cluster.New(cluster.WithRadius(h.ClusterRadius)), nil
}

// LogValue returns structured log value
func (h Heatmap) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("radius_km", h.RadiusKm),
		slog.String("time_range", h.TimeRange),
		slog.Duration("region_debounce", h.RegionDebounce),
		slog.Float64("cluster_radius", h.ClusterRadius),
	)
}
