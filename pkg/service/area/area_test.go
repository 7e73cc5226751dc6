package area_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/secmon-lab/sirse/pkg/service/area"
)

func newTestTaxonomy(t *testing.T) *model.CategoryTaxonomy {
	taxonomy, err := model.NewCategoryTaxonomy(&model.CategoriesConfig{
		Fallback: "otros",
		Categories: []model.DisplayCategory{
			{ID: "limpieza", Name: "Limpieza", Color: "#4CAF50", Aliases: []string{"Basura", "Residuos"}},
			{ID: "seguridad", Name: "Seguridad", Color: "#F44336", Aliases: []string{"Robo"}},
			{ID: "otros", Name: "Otros", Color: "#607D8B"},
		},
	})
	gt.NoError(t, err).Required()
	return taxonomy
}

var now = time.Date(2025, 11, 22, 20, 0, 0, 0, time.UTC)

func report(id string, lat, lng float64, category string, age time.Duration) *model.Report {
	return &model.Report{
		ID:                  types.ReportID(id),
		Category:            category,
		Coordinates:         model.Coordinates{Latitude: lat, Longitude: lng},
		ReportedAtTimestamp: now.Add(-age).UnixMilli(),
	}
}

func ids(reports []*model.Report) []types.ReportID {
	result := make([]types.ReportID, 0, len(reports))
	for _, r := range reports {
		result = append(result, r.ID)
	}
	return result
}

func TestFilter(t *testing.T) {
	engine := area.New(newTestTaxonomy(t))
	bounds := &model.GeographicBounds{
		NorthEast: model.Coordinates{Latitude: 20.1, Longitude: -98.3},
		SouthWest: model.Coordinates{Latitude: 20.0, Longitude: -98.4},
	}

	reports := []*model.Report{
		report("inside", 20.05, -98.35, "Basura", time.Hour),
		report("outside", 21.0, -98.35, "Basura", time.Hour),
		report("edge", 20.1, -98.4, "Robo", time.Hour),
		report("old", 20.05, -98.35, "Robo", 10*24*time.Hour),
		report("unmapped", 20.05, -98.35, "Fuga de agua", time.Hour),
		report("broken", 200, -98.35, "Basura", time.Hour),
	}

	t.Run("bounds are inclusive and malformed coordinates excluded", func(t *testing.T) {
		got := engine.Filter(reports, area.Criteria{Bounds: bounds})
		gt.Equal(t, []types.ReportID{"inside", "edge", "old", "unmapped"}, ids(got))
	})

	t.Run("category resolves through the taxonomy", func(t *testing.T) {
		got := engine.Filter(reports, area.Criteria{Bounds: bounds, CategoryID: "seguridad"})
		gt.Equal(t, []types.ReportID{"edge", "old"}, ids(got))

		got = engine.Filter(reports, area.Criteria{CategoryID: "otros"})
		gt.Equal(t, []types.ReportID{"unmapped"}, ids(got))
	})

	t.Run("window excludes older reports", func(t *testing.T) {
		got := engine.Filter(reports, area.Criteria{
			Bounds: bounds,
			Window: 7 * 24 * time.Hour,
			Now:    now,
		})
		gt.Equal(t, []types.ReportID{"inside", "edge", "unmapped"}, ids(got))
	})

	t.Run("age equal to the window is kept", func(t *testing.T) {
		r := report("boundary", 20.05, -98.35, "Basura", 24*time.Hour)
		got := engine.Filter([]*model.Report{r}, area.Criteria{Window: 24 * time.Hour, Now: now})
		gt.A(t, got).Length(1)
	})

	t.Run("idempotent and order preserving subset", func(t *testing.T) {
		c := area.Criteria{Bounds: bounds, Window: 30 * 24 * time.Hour, Now: now}
		once := engine.Filter(reports, c)
		twice := engine.Filter(once, c)
		gt.Equal(t, ids(once), ids(twice))
		gt.True(t, len(once) <= len(reports))
		gt.Equal(t, types.ReportID("inside"), reports[0].ID)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		got := engine.Filter(nil, area.Criteria{Bounds: bounds})
		gt.NotNil(t, got)
		gt.A(t, got).Length(0)
	})

	t.Run("box crossing the antimeridian contains nothing", func(t *testing.T) {
		wrapped := &model.GeographicBounds{
			NorthEast: model.Coordinates{Latitude: 10, Longitude: -170},
			SouthWest: model.Coordinates{Latitude: -10, Longitude: 170},
		}
		got := engine.Filter([]*model.Report{
			report("east", 0, 175, "Basura", 0),
			report("west", 0, -175, "Basura", 0),
		}, area.Criteria{Bounds: wrapped})
		gt.A(t, got).Length(0)
	})
}

func TestCategoryStats(t *testing.T) {
	engine := area.New(newTestTaxonomy(t))

	t.Run("counts and percentages per display category", func(t *testing.T) {
		stats := engine.CategoryStats([]*model.Report{
			report("1", 20, -98, "Basura", 0),
			report("2", 20, -98, "Residuos", 0),
			report("3", 20, -98, "Robo", 0),
			report("4", 20, -98, "Sin mapeo", 0),
		})
		gt.A(t, stats).Length(3)
		gt.Equal(t, "limpieza", stats[0].Category.ID)
		gt.Equal(t, 2, stats[0].Count)
		gt.Equal(t, 50.0, stats[0].Percentage)
		gt.Equal(t, 1, stats[1].Count)
		gt.Equal(t, 25.0, stats[1].Percentage)
		gt.Equal(t, 1, stats[2].Count)
	})

	t.Run("no reports yields zero percentages", func(t *testing.T) {
		stats := engine.CategoryStats(nil)
		gt.A(t, stats).Length(3)
		for _, s := range stats {
			gt.Equal(t, 0, s.Count)
			gt.Equal(t, 0.0, s.Percentage)
		}
	})
}
