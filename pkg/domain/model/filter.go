package model

import (
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/types"
)

// FilterKind names the variants of Filter
type FilterKind string

const (
	FilterKindAll      FilterKind = "all"
	FilterKindCategory FilterKind = "category"
	FilterKindStatus   FilterKind = "status"
	FilterKindNearby   FilterKind = "nearby"
	FilterKindRecent   FilterKind = "recent"
)

const (
	// DefaultNearbyRadiusKm is the search radius of the nearby feed
	DefaultNearbyRadiusKm = 5.0
	// DefaultRecentWindow is the age limit of the recent feed
	DefaultRecentWindow = 24 * time.Hour
)

// Filter selects reports for the feed. The set of variants is closed; use a
// type switch over AllFilter, CategoryFilter, StatusFilter, NearbyFilter and
// RecentFilter.
type Filter interface {
	Kind() FilterKind
	isFilter()
}

// AllFilter selects every report
type AllFilter struct{}

// CategoryFilter selects reports whose API category resolves to a display category
type CategoryFilter struct {
	CategoryID string
}

// StatusFilter selects reports with the given status
type StatusFilter struct {
	Status types.ReportStatus
}

// NearbyFilter selects reports within RadiusKm of Center. A nil Center means
// the current user location.
type NearbyFilter struct {
	Center   *Coordinates
	RadiusKm float64
}

// RecentFilter selects reports not older than Window
type RecentFilter struct {
	Window time.Duration
}

func (AllFilter) Kind() FilterKind      { return FilterKindAll }
func (CategoryFilter) Kind() FilterKind { return FilterKindCategory }
func (StatusFilter) Kind() FilterKind   { return FilterKindStatus }
func (NearbyFilter) Kind() FilterKind   { return FilterKindNearby }
func (RecentFilter) Kind() FilterKind   { return FilterKindRecent }

func (AllFilter) isFilter()      {}
func (CategoryFilter) isFilter() {}
func (StatusFilter) isFilter()   {}
func (NearbyFilter) isFilter()   {}
func (RecentFilter) isFilter()   {}

// ParseFilter builds a filter from its kind and a single textual argument.
// For nearby the argument is the radius in km, for recent a duration such as
// "24h"; an empty argument selects the default.
func ParseFilter(kind, value string) (Filter, error) {
	switch FilterKind(kind) {
	case FilterKindAll, "":
		return AllFilter{}, nil

	case FilterKindCategory:
		if value == "" {
			return nil, goerr.Wrap(ErrInvalidFilter, "category is required")
		}
		return CategoryFilter{CategoryID: value}, nil

	case FilterKindStatus:
		status := types.ReportStatus(value)
		if !status.IsValid() {
			return nil, goerr.Wrap(ErrInvalidFilter, "unknown status", goerr.V("status", value))
		}
		return StatusFilter{Status: status}, nil

	case FilterKindNearby:
		radius := DefaultNearbyRadiusKm
		if value != "" {
			r, err := strconv.ParseFloat(value, 64)
			if err != nil || r <= 0 {
				return nil, goerr.Wrap(ErrInvalidFilter, "invalid radius", goerr.V("radius", value))
			}
			radius = r
		}
		return NearbyFilter{RadiusKm: radius}, nil

	case FilterKindRecent:
		window := DefaultRecentWindow
		if value != "" {
			if tr, err := ParseTimeRange(value); err == nil {
				window = tr.Duration()
			} else if d, err := time.ParseDuration(value); err == nil && d > 0 {
				window = d
			} else {
				return nil, goerr.Wrap(ErrInvalidFilter, "invalid window", goerr.V("window", value))
			}
		}
		return RecentFilter{Window: window}, nil

	default:
		return nil, goerr.Wrap(ErrInvalidFilter, "unknown filter kind", goerr.V("kind", kind))
	}
}
