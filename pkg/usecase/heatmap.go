package usecase

import (
	"context"
	"errors"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/service/area"
	"github.com/secmon-lab/sirse/pkg/service/cluster"
	"github.com/secmon-lab/sirse/pkg/service/location"
	"github.com/secmon-lab/sirse/pkg/utils/debounce"
	"github.com/secmon-lab/sirse/pkg/utils/geo"
	"github.com/secmon-lab/sirse/pkg/utils/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultHeatmapRadiusKm is the half size of the initial viewport
	DefaultHeatmapRadiusKm = 5.0
	// DefaultRegionDebounce is the quiet period before a moving viewport
	// is considered settled
	DefaultRegionDebounce = 300 * time.Millisecond
)

// HeatmapConfig holds configuration for Heatmap
type HeatmapConfig struct {
	radiusKm         float64
	regionDebounce   time.Duration
	initialTimeRange model.TimeRange
	now              func() time.Time
	metrics          *metrics.Recorder
}

// HeatmapOption is a functional option for configuring Heatmap
type HeatmapOption func(*HeatmapConfig)

// WithInitialRadius sets the half size in km of the viewport opened around
// the user location
func WithInitialRadius(km float64) HeatmapOption {
	return func(c *HeatmapConfig) {
		if km > 0 {
			c.radiusKm = km
		}
	}
}

// WithRegionDebounce sets the quiet period of RegionChanged
func WithRegionDebounce(d time.Duration) HeatmapOption {
	return func(c *HeatmapConfig) {
		c.regionDebounce = d
	}
}

// WithInitialTimeRange sets the time range selected on mount
func WithInitialTimeRange(tr model.TimeRange) HeatmapOption {
	return func(c *HeatmapConfig) {
		if tr.IsValid() {
			c.initialTimeRange = tr
		}
	}
}

// WithClock replaces the clock used for report ages
func WithClock(now func() time.Time) HeatmapOption {
	return func(c *HeatmapConfig) {
		c.now = now
	}
}

// WithHeatmapMetrics records recompute and staleness metrics
func WithHeatmapMetrics(recorder *metrics.Recorder) HeatmapOption {
	return func(c *HeatmapConfig) {
		c.metrics = recorder
	}
}

// NewHeatmapConfig creates a new HeatmapConfig with default values and optional settings
func NewHeatmapConfig(opts ...HeatmapOption) *HeatmapConfig {
	config := &HeatmapConfig{
		radiusKm:         DefaultHeatmapRadiusKm,
		regionDebounce:   DefaultRegionDebounce,
		initialTimeRange: model.DefaultTimeRange,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Heatmap drives one heat map screen: it holds the fetched report set and
// the filter state, and recomputes the clusters whenever either changes.
//
// Only time range changes and explicit refreshes go to the network. Every
// fetch is tagged with a generation and only the latest issued generation
// may update the state, so a slow response never overwrites a newer one.
type Heatmap struct {
	repo      interfaces.ReportRepository
	locator   *location.Resolver
	taxonomy  *model.CategoryTaxonomy
	engine    *area.Engine
	clusterer *cluster.Clusterer
	config    *HeatmapConfig
	region    *debounce.Debouncer

	mu               sync.Mutex
	mounted          bool
	locationKnown    bool
	location         model.Coordinates
	permissionDenied bool
	permissionShown  bool
	bounds           *model.GeographicBounds
	regionSeq        uint64
	regionApplied    uint64
	timeRange        model.TimeRange
	category         *model.DisplayCategory

	// reports is replaced wholesale, never modified in place
	reports    []*model.Report
	generation uint64
	resolved   uint64
	fetchErr   error

	clusters  []model.Cluster
	visible   int
	stats     []model.CategoryStat
	updatedAt time.Time
}

// NewHeatmap creates a new heat map controller
func NewHeatmap(repo interfaces.ReportRepository, locator *location.Resolver, taxonomy *model.CategoryTaxonomy, clusterer *cluster.Clusterer, config *HeatmapConfig) *Heatmap {
	if config == nil {
		config = NewHeatmapConfig()
	}
	return &Heatmap{
		repo:      repo,
		locator:   locator,
		taxonomy:  taxonomy,
		engine:    area.New(taxonomy),
		clusterer: clusterer,
		config:    config,
		region:    debounce.New(config.regionDebounce),
		timeRange: config.initialTimeRange,
		clusters:  []model.Cluster{},
		stats:     []model.CategoryStat{},
	}
}

// Mount resolves the user location and fetches the reports concurrently.
// Failures of either are turned into view state; Mount only returns an
// error when called twice or when ctx is cancelled.
func (h *Heatmap) Mount(ctx context.Context) error {
	h.mu.Lock()
	if h.mounted {
		h.mu.Unlock()
		return goerr.New("heatmap already mounted")
	}
	h.mounted = true
	gen := h.nextGenerationLocked()
	h.mu.Unlock()

	var eg errgroup.Group
	eg.Go(func() error {
		res, err := h.locator.Resolve(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to resolve location")
		}
		h.applyLocation(res)
		return nil
	})
	eg.Go(func() error {
		h.fetch(ctx, gen)
		return nil
	})
	return eg.Wait()
}

// SetTimeRange selects a new time range and refetches the reports
func (h *Heatmap) SetTimeRange(ctx context.Context, tr model.TimeRange) error {
	if !tr.IsValid() {
		return goerr.Wrap(model.ErrInvalidTimeRange, "unknown time range", goerr.V("timeRange", tr))
	}

	h.mu.Lock()
	h.timeRange = tr
	gen := h.nextGenerationLocked()
	h.recomputeLocked()
	h.mu.Unlock()

	h.fetch(ctx, gen)
	return nil
}

// Refresh refetches the reports for the current time range
func (h *Heatmap) Refresh(ctx context.Context) {
	h.mu.Lock()
	gen := h.nextGenerationLocked()
	h.mu.Unlock()

	h.fetch(ctx, gen)
}

// RegionChanged reports an intermediate viewport while the map is moving.
// The recompute runs once the viewport has been quiet for the debounce
// period.
func (h *Heatmap) RegionChanged(bounds model.GeographicBounds) error {
	if err := bounds.Validate(); err != nil {
		return err
	}
	seq := h.nextRegionSeq()
	h.region.Submit(func() {
		h.applyRegion(bounds, seq)
	})
	return nil
}

// RegionSettled applies a final viewport immediately
func (h *Heatmap) RegionSettled(bounds model.GeographicBounds) error {
	if err := bounds.Validate(); err != nil {
		return err
	}
	h.region.Cancel()
	h.applyRegion(bounds, h.nextRegionSeq())
	return nil
}

func (h *Heatmap) nextRegionSeq() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.regionSeq++
	return h.regionSeq
}

// applyRegion sets the viewport unless a later region has already been
// applied. A debounced region that fires while a newer one is submitted
// must not overwrite it.
func (h *Heatmap) applyRegion(bounds model.GeographicBounds, seq uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if seq < h.regionApplied {
		return
	}
	h.regionApplied = seq
	h.bounds = &bounds
	h.recomputeLocked()
}

// ToggleCategory selects a display category. Selecting the selected
// category, or the empty ID, clears the selection.
func (h *Heatmap) ToggleCategory(categoryID string) error {
	var selected *model.DisplayCategory
	if categoryID != "" {
		cat, ok := h.taxonomy.FindByID(categoryID)
		if !ok {
			return goerr.Wrap(model.ErrCategoryNotFound, "unknown category", goerr.V("id", categoryID))
		}
		selected = &cat
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if selected != nil && h.category != nil && h.category.ID == selected.ID {
		selected = nil
	}
	h.category = selected
	h.recomputeLocked()
	return nil
}

// View returns a snapshot of the current state. The location permission
// notice is included in the first view after it was denied only.
func (h *Heatmap) View() *model.HeatmapView {
	h.mu.Lock()
	defer h.mu.Unlock()

	view := &model.HeatmapView{
		State:            h.stateLocked(),
		Location:         h.location,
		PermissionDenied: h.permissionDenied,
		TimeRange:        h.timeRange,
		Clusters:         slices.Clone(h.clusters),
		VisibleCount:     h.visible,
		TotalCount:       len(h.reports),
		Stats:            slices.Clone(h.stats),
		UpdatedAt:        h.updatedAt,
	}
	if h.bounds != nil {
		view.Bounds = *h.bounds
	}
	if h.category != nil {
		cat := *h.category
		view.Category = &cat
	}
	if h.fetchErr != nil {
		view.ErrorMessage = fetchErrorMessage(h.fetchErr)
	}

	view.Empty = view.State == model.HeatmapStateReady && h.fetchErr == nil && h.visible == 0
	switch {
	case h.permissionDenied && !h.permissionShown && h.locationKnown:
		view.Message = model.MessagePermissionDenied
		h.permissionShown = true
	case view.Empty:
		view.Message = model.MessageNoReports
	}
	return view
}

// Close stops pending viewport updates
func (h *Heatmap) Close() {
	h.region.Stop()
}

func (h *Heatmap) applyLocation(res location.Resolution) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.location = res.Coordinates
	h.locationKnown = true
	h.permissionDenied = res.PermissionDenied
	if h.bounds == nil {
		b := geo.BoundsAround(res.Coordinates, h.config.radiusKm)
		h.bounds = &b
	}
	h.recomputeLocked()
}

// fetch loads the full report set. The time window is applied when
// filtering so that region changes never need the network.
func (h *Heatmap) fetch(ctx context.Context, gen uint64) {
	logger := ctxlog.From(ctx)

	reports, err := h.repo.GetAllReports(ctx, model.ReportQuery{})

	h.mu.Lock()
	defer h.mu.Unlock()

	if gen != h.generation {
		h.config.metrics.IncStaleResponse()
		logger.Debug("discarding stale report fetch",
			"generation", gen,
			"latest", h.generation,
		)
		return
	}
	h.resolved = gen

	if err != nil {
		logger.Warn("failed to fetch reports", "error", err)
		h.fetchErr = err
	} else {
		h.reports = reports
		h.fetchErr = nil
	}
	h.recomputeLocked()
}

func (h *Heatmap) nextGenerationLocked() uint64 {
	h.generation++
	return h.generation
}

func (h *Heatmap) stateLocked() model.HeatmapState {
	switch {
	case !h.mounted:
		return model.HeatmapStateIdle
	case !h.locationKnown:
		return model.HeatmapStateLoadingLocation
	case h.resolved != h.generation:
		return model.HeatmapStateLoadingReports
	default:
		return model.HeatmapStateReady
	}
}

// recomputeLocked reruns the area filter and the clusterer over the held
// report set. Category statistics ignore the category selection so that
// the panel keeps showing the full breakdown of the viewport.
func (h *Heatmap) recomputeLocked() {
	start := time.Now()
	h.updatedAt = h.config.now()

	// nothing is on screen before the first viewport is known
	if h.bounds == nil {
		h.clusters = []model.Cluster{}
		h.visible = 0
		h.stats = h.engine.CategoryStats(nil)
		return
	}

	inView := h.engine.Filter(h.reports, area.Criteria{
		Bounds: h.bounds,
		Window: h.timeRange.Duration(),
		Now:    h.config.now(),
	})
	visible := inView
	if h.category != nil {
		visible = h.engine.Filter(inView, area.Criteria{CategoryID: h.category.ID})
	}

	h.clusters = h.clusterer.Cluster(visible)
	h.visible = len(visible)
	h.stats = h.engine.CategoryStats(inView)

	h.config.metrics.ObserveRecompute(time.Since(start), len(h.clusters))
}

// fetchErrorMessage tells a missing connection apart from a failing server
func fetchErrorMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return model.MessageOffline
	}
	return model.MessageLoadFailed
}
