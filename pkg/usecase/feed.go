package usecase

import (
	"context"
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/secmon-lab/sirse/pkg/service/location"
	"github.com/secmon-lab/sirse/pkg/utils/geo"
)

// DefaultFeedLimit is the page size of the report feed
const DefaultFeedLimit = 10

// FeedRequest asks for one page of the report feed
type FeedRequest struct {
	Filter model.Filter
	// Page is 1-based
	Page  int
	Limit int
	// Origin is the user position. It is used for distances and as the
	// center of a nearby filter without one.
	Origin *model.Coordinates
}

// ReportCard is a report as listed in the feed
type ReportCard struct {
	Report       *model.Report         `json:"report"`
	Category     model.DisplayCategory `json:"category"`
	StatusColor  string                `json:"statusColor"`
	ShortAddress string                `json:"shortAddress"`
	TimeAgo      string                `json:"timeAgo"`
	DistanceKm   *float64              `json:"distanceKm,omitempty"`
	Distance     string                `json:"distance,omitempty"`
}

// FeedPage is one page of the report feed
type FeedPage struct {
	Filter     model.FilterKind `json:"filter"`
	Items      []ReportCard     `json:"items"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int              `json:"total"`
	TotalPages int              `json:"totalPages"`
	HasMore    bool             `json:"hasMore"`
	Empty      bool             `json:"empty"`
	Message    string           `json:"message,omitempty"`
}

// Feed lists reports for the filter tabs of the report list. All and
// status filters are paginated by the report API; category, nearby and
// recent filters are applied locally over the full set and paginated here.
type Feed struct {
	repo     interfaces.ReportRepository
	taxonomy *model.CategoryTaxonomy
	locator  *location.Resolver
	now      func() time.Time
}

// NewFeed creates a new Feed instance
func NewFeed(repo interfaces.ReportRepository, taxonomy *model.CategoryTaxonomy, locator *location.Resolver) *Feed {
	return &Feed{
		repo:     repo,
		taxonomy: taxonomy,
		locator:  locator,
		now:      time.Now,
	}
}

// SetClock replaces the clock used for ages
func (f *Feed) SetClock(now func() time.Time) {
	f.now = now
}

// List returns one page of the feed
func (f *Feed) List(ctx context.Context, req FeedRequest) (*FeedPage, error) {
	if req.Filter == nil {
		req.Filter = model.AllFilter{}
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = DefaultFeedLimit
	}

	var page *model.ReportPage
	var err error
	switch filter := req.Filter.(type) {
	case model.AllFilter:
		page, err = f.repo.GetPaginatedReports(ctx, model.PageQuery{Page: req.Page, Limit: req.Limit})

	case model.StatusFilter:
		page, err = f.repo.GetPaginatedReports(ctx, model.PageQuery{
			ReportQuery: model.ReportQuery{Status: filter.Status},
			Page:        req.Page,
			Limit:       req.Limit,
		})

	case model.CategoryFilter:
		page, err = f.listCategory(ctx, filter, req)

	case model.NearbyFilter:
		page, err = f.listNearby(ctx, filter, &req)

	case model.RecentFilter:
		page, err = f.listRecent(ctx, filter, req)

	default:
		return nil, goerr.Wrap(model.ErrInvalidFilter, "unsupported filter", goerr.V("kind", req.Filter.Kind()))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list reports", goerr.V("filter", req.Filter.Kind()))
	}

	result := &FeedPage{
		Filter:     req.Filter.Kind(),
		Items:      make([]ReportCard, 0, len(page.Data)),
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		HasMore:    page.HasMore,
	}
	now := f.now()
	for _, r := range page.Data {
		result.Items = append(result.Items, f.card(r, req.Origin, now))
	}
	if len(result.Items) == 0 && req.Page == 1 {
		result.Empty = true
		result.Message = model.MessageNoReports
	}
	return result, nil
}

// Collect fetches up to maxPages pages and accumulates them, dropping
// reports already seen on an earlier page
func (f *Feed) Collect(ctx context.Context, req FeedRequest, maxPages int) ([]ReportCard, error) {
	var cards []ReportCard
	seen := make(map[types.ReportID]bool)

	start := max(req.Page, 1)
	for p := start; p < start+maxPages; p++ {
		req.Page = p
		page, err := f.List(ctx, req)
		if err != nil {
			return cards, err
		}
		for _, card := range page.Items {
			if seen[card.Report.ID] {
				continue
			}
			seen[card.Report.ID] = true
			cards = append(cards, card)
		}
		if !page.HasMore {
			break
		}
	}
	return cards, nil
}

// MergeReports appends the reports of next that are not in existing
func MergeReports(existing, next []*model.Report) []*model.Report {
	seen := make(map[types.ReportID]bool, len(existing))
	for _, r := range existing {
		seen[r.ID] = true
	}

	merged := slices.Clone(existing)
	for _, r := range next {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		merged = append(merged, r)
	}
	return merged
}

func (f *Feed) listCategory(ctx context.Context, filter model.CategoryFilter, req FeedRequest) (*model.ReportPage, error) {
	if _, ok := f.taxonomy.FindByID(filter.CategoryID); !ok {
		return nil, goerr.Wrap(model.ErrCategoryNotFound, "unknown category", goerr.V("id", filter.CategoryID))
	}

	all, err := f.repo.GetAllReports(ctx, model.ReportQuery{})
	if err != nil {
		return nil, err
	}

	matched := make([]*model.Report, 0, len(all))
	for _, r := range all {
		if f.taxonomy.Resolve(r.Category).ID == filter.CategoryID {
			matched = append(matched, r)
		}
	}
	return model.PaginateReports(matched, req.Page, req.Limit), nil
}

// listNearby sets req.Origin when the center had to be resolved so that
// distances are measured from it
func (f *Feed) listNearby(ctx context.Context, filter model.NearbyFilter, req *FeedRequest) (*model.ReportPage, error) {
	radius := filter.RadiusKm
	if radius <= 0 {
		radius = model.DefaultNearbyRadiusKm
	}

	var center model.Coordinates
	switch {
	case filter.Center != nil:
		center = *filter.Center
	case req.Origin != nil:
		center = *req.Origin
	default:
		res, err := f.locator.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		center = res.Coordinates
	}
	if req.Origin == nil {
		req.Origin = &center
	}

	reports, err := f.repo.GetReportsByArea(ctx, model.AreaQuery{
		Bounds: geo.BoundsAround(center, radius),
	})
	if err != nil {
		return nil, err
	}

	type ranked struct {
		report   *model.Report
		distance float64
	}
	within := make([]ranked, 0, len(reports))
	for _, r := range reports {
		if d := geo.DistanceKm(center, r.Coordinates); d <= radius {
			within = append(within, ranked{report: r, distance: d})
		}
	}
	slices.SortStableFunc(within, func(a, b ranked) int {
		switch {
		case a.distance < b.distance:
			return -1
		case a.distance > b.distance:
			return 1
		default:
			return 0
		}
	})

	sorted := make([]*model.Report, 0, len(within))
	for _, w := range within {
		sorted = append(sorted, w.report)
	}
	return model.PaginateReports(sorted, req.Page, req.Limit), nil
}

func (f *Feed) listRecent(ctx context.Context, filter model.RecentFilter, req FeedRequest) (*model.ReportPage, error) {
	window := filter.Window
	if window <= 0 {
		window = model.DefaultRecentWindow
	}

	all, err := f.repo.GetAllReports(ctx, model.ReportQuery{})
	if err != nil {
		return nil, err
	}

	now := f.now()
	recent := make([]*model.Report, 0, len(all))
	for _, r := range all {
		if r.Age(now) <= window {
			recent = append(recent, r)
		}
	}
	slices.SortStableFunc(recent, func(a, b *model.Report) int {
		return b.ReportedTime().Compare(a.ReportedTime())
	})
	return model.PaginateReports(recent, req.Page, req.Limit), nil
}

func (f *Feed) card(r *model.Report, origin *model.Coordinates, now time.Time) ReportCard {
	card := ReportCard{
		Report:      r,
		Category:    f.taxonomy.Resolve(r.Category),
		StatusColor: r.Status.Color(),
		TimeAgo:     TimeAgo(r.ReportedTime(), now),
	}
	if r.NeedsGeocoding() || r.Address == "" {
		card.ShortAddress = r.Coordinates.Label()
	} else {
		card.ShortAddress = r.ShortAddress()
	}
	if origin != nil && origin.IsValid() {
		km := geo.DistanceKm(*origin, r.Coordinates)
		card.DistanceKm = &km
		card.Distance = geo.FormatDistance(km)
	}
	return card
}
