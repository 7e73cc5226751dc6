// Package cluster groups map reports into heat map density clusters.
package cluster

import (
	"math"

	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
)

const (
	DefaultRadiusDegrees = 0.005
	DefaultBaseRadius    = 200.0
	DefaultScaleFactor   = 100.0
	DefaultMaxRadius     = 800.0
)

// Config holds clustering parameters
type Config struct {
	// RadiusDegrees is the join distance, measured as plain Euclidean
	// distance over latitude and longitude degrees
	RadiusDegrees float64
	// BaseRadius, ScaleFactor and MaxRadius shape the display radius in meters
	BaseRadius  float64
	ScaleFactor float64
	MaxRadius   float64
}

// Option is a functional option for configuring Clusterer
type Option func(*Config)

// WithRadius sets the join distance in degrees
func WithRadius(degrees float64) Option {
	return func(c *Config) {
		c.RadiusDegrees = degrees
	}
}

// WithBaseRadius sets the display radius of an empty cluster in meters
func WithBaseRadius(meters float64) Option {
	return func(c *Config) {
		c.BaseRadius = meters
	}
}

// WithScaleFactor sets the meters added per unit of intensity times count
func WithScaleFactor(factor float64) Option {
	return func(c *Config) {
		c.ScaleFactor = factor
	}
}

// WithMaxRadius caps the display radius in meters
func WithMaxRadius(meters float64) Option {
	return func(c *Config) {
		c.MaxRadius = meters
	}
}

// Clusterer runs greedy single-link clustering. It holds no state between
// calls and is safe for concurrent use.
type Clusterer struct {
	config Config
}

// New creates a new Clusterer with default values and optional settings
func New(opts ...Option) *Clusterer {
	config := Config{
		RadiusDegrees: DefaultRadiusDegrees,
		BaseRadius:    DefaultBaseRadius,
		ScaleFactor:   DefaultScaleFactor,
		MaxRadius:     DefaultMaxRadius,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return &Clusterer{config: config}
}

// Config returns the effective configuration
func (c *Clusterer) Config() Config {
	return c.config
}

type openCluster struct {
	center  model.Coordinates
	members []model.Coordinates
	ids     []types.ReportID
}

// Cluster groups reports in input order. Each report joins the first
// cluster, in creation order, whose centroid is closer than the radius,
// after which that centroid is recomputed as the mean of all members. The
// result therefore depends on input order. Reports with malformed
// coordinates are skipped.
func (c *Clusterer) Cluster(reports []*model.Report) []model.Cluster {
	var open []*openCluster

	for _, r := range reports {
		if r == nil || !r.Coordinates.IsValid() {
			continue
		}

		joined := false
		for _, oc := range open {
			if degreeDistance(oc.center, r.Coordinates) < c.config.RadiusDegrees {
				oc.members = append(oc.members, r.Coordinates)
				oc.ids = append(oc.ids, r.ID)
				oc.center = centroid(oc.members)
				joined = true
				break
			}
		}
		if !joined {
			open = append(open, &openCluster{
				center:  r.Coordinates,
				members: []model.Coordinates{r.Coordinates},
				ids:     []types.ReportID{r.ID},
			})
		}
	}

	maxCount := 1
	for _, oc := range open {
		maxCount = max(maxCount, len(oc.members))
	}

	clusters := make([]model.Cluster, 0, len(open))
	for _, oc := range open {
		count := len(oc.members)
		intensity := math.Min(float64(count)/float64(maxCount), 1)
		clusters = append(clusters, model.Cluster{
			Center:    oc.center,
			Count:     count,
			Intensity: intensity,
			Radius:    math.Min(c.config.BaseRadius+intensity*float64(count)*c.config.ScaleFactor, c.config.MaxRadius),
			Color:     HeatColor(intensity),
			ReportIDs: oc.ids,
		})
	}
	return clusters
}

// HeatColor maps an intensity in [0, 1] to the fill color of its circle
func HeatColor(intensity float64) string {
	switch {
	case intensity >= 0.8:
		return "rgba(255, 0, 0, 0.7)"
	case intensity >= 0.6:
		return "rgba(255, 87, 34, 0.6)"
	case intensity >= 0.4:
		return "rgba(255, 152, 0, 0.5)"
	case intensity >= 0.2:
		return "rgba(255, 235, 59, 0.4)"
	default:
		return "rgba(76, 175, 80, 0.3)"
	}
}

func degreeDistance(a, b model.Coordinates) float64 {
	return math.Hypot(a.Latitude-b.Latitude, a.Longitude-b.Longitude)
}

func centroid(points []model.Coordinates) model.Coordinates {
	var lat, lng float64
	for _, p := range points {
		lat += p.Latitude
		lng += p.Longitude
	}
	n := float64(len(points))
	return model.Coordinates{Latitude: lat / n, Longitude: lng / n}
}
