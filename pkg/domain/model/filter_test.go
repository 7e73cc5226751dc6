package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
)

func TestParseFilter(t *testing.T) {
	testCases := []struct {
		name  string
		kind  string
		value string
		want  model.Filter
	}{
		{"empty", "", "", model.AllFilter{}},
		{"all", "all", "ignored", model.AllFilter{}},
		{"category", "category", "baches", model.CategoryFilter{CategoryID: "baches"}},
		{"status", "status", "Urgente", model.StatusFilter{Status: types.ReportStatusUrgent}},
		{"nearby default", "nearby", "", model.NearbyFilter{RadiusKm: model.DefaultNearbyRadiusKm}},
		{"nearby radius", "nearby", "2.5", model.NearbyFilter{RadiusKm: 2.5}},
		{"recent default", "recent", "", model.RecentFilter{Window: 24 * time.Hour}},
		{"recent time range", "recent", "7d", model.RecentFilter{Window: 7 * 24 * time.Hour}},
		{"recent duration", "recent", "90m", model.RecentFilter{Window: 90 * time.Minute}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := model.ParseFilter(tc.kind, tc.value)
			gt.NoError(t, err).Required()
			gt.Equal(t, tc.want, got)
		})
	}

	invalid := []struct {
		name  string
		kind  string
		value string
	}{
		{"unknown kind", "popular", ""},
		{"category without ID", "category", ""},
		{"unknown status", "status", "Cerrado"},
		{"negative radius", "nearby", "-1"},
		{"radius not a number", "nearby", "far"},
		{"bad window", "recent", "yesterday"},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.ParseFilter(tc.kind, tc.value)
			gt.True(t, errors.Is(err, model.ErrInvalidFilter))
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	tr, err := model.ParseTimeRange("")
	gt.NoError(t, err).Required()
	gt.Equal(t, model.TimeRangeWeek, tr)

	tr, err = model.ParseTimeRange("30d")
	gt.NoError(t, err).Required()
	gt.Equal(t, 30*24*time.Hour, tr.Duration())

	_, err = model.ParseTimeRange("1y")
	gt.True(t, errors.Is(err, model.ErrInvalidTimeRange))
}
