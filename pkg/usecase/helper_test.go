package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/secmon-lab/sirse/pkg/repository"
	"github.com/secmon-lab/sirse/pkg/service/location"
)

var (
	testNow = time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	pachuca = model.Coordinates{Latitude: 20.0847, Longitude: -98.3686}
)

func newTestTaxonomy(t *testing.T) *model.CategoryTaxonomy {
	t.Helper()
	taxonomy, err := model.NewCategoryTaxonomy(&model.CategoriesConfig{
		Fallback: "otros",
		Categories: []model.DisplayCategory{
			{ID: "baches", Name: "Baches", Color: "#795548", Icon: "🕳️", Aliases: []string{"Bache", "Pavimento"}},
			{ID: "alumbrado", Name: "Alumbrado", Color: "#FFC107", Icon: "💡", Aliases: []string{"Luminaria"}},
			{ID: "otros", Name: "Otros", Color: "#9E9E9E", Icon: "📌"},
		},
	})
	gt.NoError(t, err).Required()
	return taxonomy
}

func newReport(id, category string, status types.ReportStatus, coords model.Coordinates, age time.Duration) *model.Report {
	return &model.Report{
		ID:                  types.ReportID(id),
		Title:               "Reporte " + id,
		Description:         "Descripción " + id,
		Category:            category,
		Status:              status,
		Coordinates:         coords,
		Address:             "Calle " + id + ", Centro, Pachuca",
		ReportedAtTimestamp: testNow.Add(-age).UnixMilli(),
	}
}

// testReports places three reports in central Pachuca, one in Mexico City
// and one old report in Pachuca
func testReports() []*model.Report {
	return []*model.Report{
		newReport("1", "Baches", types.ReportStatusPending, pachuca, time.Hour),
		newReport("2", "Bache", types.ReportStatusUrgent, model.Coordinates{Latitude: 20.08475, Longitude: -98.36865}, 2*time.Hour),
		newReport("3", "Luminaria", types.ReportStatusInProgress, model.Coordinates{Latitude: 20.1, Longitude: -98.37}, 3*24*time.Hour),
		newReport("4", "Baches", types.ReportStatusUrgent, model.Coordinates{Latitude: 19.43, Longitude: -99.13}, time.Hour),
		newReport("5", "Basura", types.ReportStatusPending, model.Coordinates{Latitude: 20.08, Longitude: -98.36}, 40*24*time.Hour),
	}
}

func newTestMemory() *repository.Memory {
	return newTestMemoryWith(testReports()...)
}

func newTestMemoryWith(reports ...*model.Report) *repository.Memory {
	repo := repository.NewMemory(reports...)
	repo.SetClock(func() time.Time { return testNow })
	return repo
}

func newStaticResolver(t *testing.T) *location.Resolver {
	t.Helper()
	provider, err := location.NewStaticProvider(pachuca)
	gt.NoError(t, err).Required()
	return location.NewResolver(provider)
}
