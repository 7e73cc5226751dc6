package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/types"
)

// placeholderAddressMarker marks reports submitted through the messaging
// channel whose address still has to be resolved from coordinates.
const placeholderAddressMarker = "whatsapp"

// secondsThreshold separates epoch seconds from epoch milliseconds
const secondsThreshold = 10_000_000_000

// Report is a single citizen incident report as published by the report API
type Report struct {
	ID                  types.ReportID     `json:"id"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	Category            string             `json:"category"`
	Status              types.ReportStatus `json:"status"`
	Coordinates         Coordinates        `json:"coordinates"`
	Address             string             `json:"address"`
	ReportedAt          string             `json:"reportedAt"`
	ReportedAtTimestamp int64              `json:"reportedAtTimestamp"`
	ReporterName        string             `json:"reporterName,omitempty"`
	ReporterEmail       string             `json:"reporterEmail,omitempty"`
	Photos              []string           `json:"photos,omitempty"`
	Severity            Severity           `json:"severity,omitempty"`
	Votes               int                `json:"votes"`
	Comments            int                `json:"comments"`
	MarkerColor         string             `json:"markerColor,omitempty"`
}

// Validate checks the fields every consumer relies on
func (r *Report) Validate() error {
	if r.ID == "" {
		return goerr.New("report ID is required")
	}
	if !r.Coordinates.IsValid() {
		return goerr.New("report coordinates out of range",
			goerr.V("id", r.ID),
			goerr.V("coordinates", r.Coordinates))
	}
	return nil
}

// ReportedTime returns the creation time of the report
func (r *Report) ReportedTime() time.Time {
	return TimeFromEpoch(r.ReportedAtTimestamp)
}

// Age returns how long ago the report was created relative to now
func (r *Report) Age(now time.Time) time.Duration {
	return now.Sub(r.ReportedTime())
}

// NeedsGeocoding reports whether Address is the placeholder that must be
// replaced by a reverse geocoded address
func (r *Report) NeedsGeocoding() bool {
	return strings.Contains(strings.ToLower(r.Address), placeholderAddressMarker)
}

// ShortAddress returns the first comma separated segment of the address
func (r *Report) ShortAddress() string {
	return ShortenAddress(r.Address)
}

// Copy returns a deep copy of the report
func (r *Report) Copy() *Report {
	c := *r
	if r.Photos != nil {
		c.Photos = append([]string(nil), r.Photos...)
	}
	return &c
}

// ShortenAddress keeps only the leading segment of a comma separated address
func ShortenAddress(address string) string {
	first, _, _ := strings.Cut(address, ",")
	return strings.TrimSpace(first)
}

// TimeFromEpoch converts an epoch timestamp to time. Values below 1e10 are
// treated as seconds, anything else as milliseconds.
func TimeFromEpoch(ts int64) time.Time {
	if ts < secondsThreshold {
		return time.Unix(ts, 0)
	}
	return time.UnixMilli(ts)
}

// Severity is the reporter supplied severity. The vocabulary is open.
type Severity string

const (
	SeverityLow    Severity = "baja"
	SeverityMedium Severity = "media"
	SeverityHigh   Severity = "alta"
)

// Color returns the badge color for the severity
func (s Severity) Color() string {
	switch s {
	case SeverityHigh:
		return "#F44336"
	case SeverityMedium:
		return "#FF9800"
	case SeverityLow:
		return "#4CAF50"
	default:
		return "#757575"
	}
}
