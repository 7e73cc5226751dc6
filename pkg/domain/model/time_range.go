package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// TimeRange is the age window of the heat map
type TimeRange string

const (
	TimeRangeDay   TimeRange = "24h"
	TimeRangeWeek  TimeRange = "7d"
	TimeRangeMonth TimeRange = "30d"

	DefaultTimeRange = TimeRangeWeek
)

// AllTimeRanges returns the selectable ranges in display order
func AllTimeRanges() []TimeRange {
	return []TimeRange{TimeRangeDay, TimeRangeWeek, TimeRangeMonth}
}

// ParseTimeRange parses a time range, empty selects the default
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return DefaultTimeRange, nil
	}
	tr := TimeRange(s)
	if !tr.IsValid() {
		return "", goerr.Wrap(ErrInvalidTimeRange, "unknown time range", goerr.V("timeRange", s))
	}
	return tr, nil
}

// IsValid checks if the range is one of the known values
func (r TimeRange) IsValid() bool {
	switch r {
	case TimeRangeDay, TimeRangeWeek, TimeRangeMonth:
		return true
	default:
		return false
	}
}

// Duration returns the window length
func (r TimeRange) Duration() time.Duration {
	switch r {
	case TimeRangeDay:
		return 24 * time.Hour
	case TimeRangeMonth:
		return 30 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// String returns the string representation
func (r TimeRange) String() string {
	return string(r)
}

// Label returns the Spanish label of the range selector
func (r TimeRange) Label() string {
	switch r {
	case TimeRangeDay:
		return "Últimas 24 horas"
	case TimeRangeMonth:
		return "Últimos 30 días"
	default:
		return "Últimos 7 días"
	}
}
