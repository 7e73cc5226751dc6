package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces/mocks"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/secmon-lab/sirse/pkg/usecase"
)

func newTestFeed(t *testing.T) *usecase.Feed {
	feed := usecase.NewFeed(newTestMemory(), newTestTaxonomy(t), newStaticResolver(t))
	feed.SetClock(func() time.Time { return testNow })
	return feed
}

func ids(cards []usecase.ReportCard) []types.ReportID {
	result := make([]types.ReportID, 0, len(cards))
	for _, c := range cards {
		result = append(result, c.Report.ID)
	}
	return result
}

func TestFeedList(t *testing.T) {
	ctx := context.Background()

	t.Run("all is paginated", func(t *testing.T) {
		feed := newTestFeed(t)
		page, err := feed.List(ctx, usecase.FeedRequest{Limit: 2})
		gt.NoError(t, err).Required()
		gt.Equal(t, model.FilterKindAll, page.Filter)
		gt.Equal(t, []types.ReportID{"1", "2"}, ids(page.Items))
		gt.Equal(t, 5, page.Total)
		gt.Equal(t, 3, page.TotalPages)
		gt.True(t, page.HasMore)

		last, err := feed.List(ctx, usecase.FeedRequest{Page: 3, Limit: 2})
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.ReportID{"5"}, ids(last.Items))
		gt.False(t, last.HasMore)
	})

	t.Run("default limit", func(t *testing.T) {
		feed := newTestFeed(t)
		page, err := feed.List(ctx, usecase.FeedRequest{})
		gt.NoError(t, err).Required()
		gt.Equal(t, usecase.DefaultFeedLimit, page.Limit)
		gt.A(t, page.Items).Length(5)
	})

	t.Run("status", func(t *testing.T) {
		feed := newTestFeed(t)
		page, err := feed.List(ctx, usecase.FeedRequest{
			Filter: model.StatusFilter{Status: types.ReportStatusUrgent},
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.ReportID{"2", "4"}, ids(page.Items))
	})

	t.Run("category resolves aliases", func(t *testing.T) {
		feed := newTestFeed(t)
		page, err := feed.List(ctx, usecase.FeedRequest{
			Filter: model.CategoryFilter{CategoryID: "baches"},
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.ReportID{"1", "2", "4"}, ids(page.Items))
		gt.Equal(t, "baches", page.Items[1].Category.ID)
	})

	t.Run("fallback category", func(t *testing.T) {
		feed := newTestFeed(t)
		page, err := feed.List(ctx, usecase.FeedRequest{
			Filter: model.CategoryFilter{CategoryID: "otros"},
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.ReportID{"5"}, ids(page.Items))
	})

	t.Run("unknown category", func(t *testing.T) {
		feed := newTestFeed(t)
		_, err := feed.List(ctx, usecase.FeedRequest{
			Filter: model.CategoryFilter{CategoryID: "incendios"},
		})
		gt.True(t, errors.Is(err, model.ErrCategoryNotFound))
	})

	t.Run("nearby is sorted by distance", func(t *testing.T) {
		feed := newTestFeed(t)
		origin := model.Coordinates{Latitude: 20.1, Longitude: -98.37}
		page, err := feed.List(ctx, usecase.FeedRequest{
			Filter: model.NearbyFilter{RadiusKm: 5},
			Origin: &origin,
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.ReportID{"3", "2", "1", "5"}, ids(page.Items))
		gt.Equal(t, "0 m", page.Items[0].Distance)
		gt.V(t, page.Items[1].DistanceKm).NotNil()
		gt.True(t, *page.Items[1].DistanceKm < 2)
	})

	t.Run("nearby without origin uses the user location", func(t *testing.T) {
		feed := newTestFeed(t)
		page, err := feed.List(ctx, usecase.FeedRequest{
			Filter: model.NearbyFilter{RadiusKm: 0.5},
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.ReportID{"1", "2"}, ids(page.Items))
		gt.Equal(t, "0 m", page.Items[0].Distance)
	})

	t.Run("recent is newest first", func(t *testing.T) {
		feed := newTestFeed(t)
		page, err := feed.List(ctx, usecase.FeedRequest{
			Filter: model.RecentFilter{Window: 24 * time.Hour},
		})
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.ReportID{"1", "4", "2"}, ids(page.Items))
	})

	t.Run("empty", func(t *testing.T) {
		feed := usecase.NewFeed(newTestMemoryWith(), newTestTaxonomy(t), newStaticResolver(t))
		page, err := feed.List(ctx, usecase.FeedRequest{})
		gt.NoError(t, err).Required()
		gt.True(t, page.Empty)
		gt.Equal(t, model.MessageNoReports, page.Message)
		gt.A(t, page.Items).Length(0)
	})

	t.Run("cards", func(t *testing.T) {
		whatsapp := newReport("w", "Luminaria", types.ReportStatusPending, pachuca, 90*time.Minute)
		whatsapp.Address = "Ubicación de WhatsApp"
		feed := usecase.NewFeed(newTestMemoryWith(whatsapp, testReports()[0]), newTestTaxonomy(t), newStaticResolver(t))
		feed.SetClock(func() time.Time { return testNow })

		page, err := feed.List(ctx, usecase.FeedRequest{})
		gt.NoError(t, err).Required()
		gt.A(t, page.Items).Length(2)

		gt.Equal(t, "20.0847, -98.3686", page.Items[0].ShortAddress)
		gt.Equal(t, "Hace 1 hora", page.Items[0].TimeAgo)
		gt.Equal(t, "alumbrado", page.Items[0].Category.ID)
		gt.Equal(t, "#2196F3", page.Items[0].StatusColor)
		gt.Equal(t, "", page.Items[0].Distance)

		gt.Equal(t, "Calle 1", page.Items[1].ShortAddress)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &mocks.ReportRepositoryMock{
			GetPaginatedReportsFunc: func(ctx context.Context, query model.PageQuery) (*model.ReportPage, error) {
				return nil, errors.New("timeout")
			},
		}
		feed := usecase.NewFeed(repo, newTestTaxonomy(t), newStaticResolver(t))
		_, err := feed.List(ctx, usecase.FeedRequest{})
		gt.Error(t, err)
	})
}

func TestFeedCollect(t *testing.T) {
	// the second page repeats report 2, as happens when a report is added
	// between two page requests
	pages := map[int][]*model.Report{
		1: {newReport("1", "Baches", "Pendiente", pachuca, time.Hour), newReport("2", "Baches", "Pendiente", pachuca, time.Hour)},
		2: {newReport("2", "Baches", "Pendiente", pachuca, time.Hour), newReport("3", "Baches", "Pendiente", pachuca, time.Hour)},
		3: {newReport("4", "Baches", "Pendiente", pachuca, time.Hour)},
	}
	repo := &mocks.ReportRepositoryMock{
		GetPaginatedReportsFunc: func(ctx context.Context, query model.PageQuery) (*model.ReportPage, error) {
			return &model.ReportPage{
				Data:       pages[query.Page],
				Page:       query.Page,
				Limit:      2,
				Total:      5,
				TotalPages: 3,
				HasMore:    query.Page < 3,
			}, nil
		},
	}
	feed := usecase.NewFeed(repo, newTestTaxonomy(t), newStaticResolver(t))

	t.Run("accumulates without duplicates", func(t *testing.T) {
		cards, err := feed.Collect(context.Background(), usecase.FeedRequest{Limit: 2}, 10)
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.ReportID{"1", "2", "3", "4"}, ids(cards))
	})

	t.Run("stops at max pages", func(t *testing.T) {
		cards, err := feed.Collect(context.Background(), usecase.FeedRequest{Limit: 2}, 1)
		gt.NoError(t, err).Required()
		gt.Equal(t, []types.ReportID{"1", "2"}, ids(cards))
	})
}

func TestMergeReports(t *testing.T) {
	a := newReport("a", "Baches", "Pendiente", pachuca, time.Hour)
	b := newReport("b", "Baches", "Pendiente", pachuca, time.Hour)
	c := newReport("c", "Baches", "Pendiente", pachuca, time.Hour)

	merged := usecase.MergeReports([]*model.Report{a, b}, []*model.Report{b, c, c})
	gt.A(t, merged).Length(3)
	gt.Equal(t, types.ReportID("c"), merged[2].ID)

	gt.A(t, usecase.MergeReports(nil, nil)).Length(0)
}
