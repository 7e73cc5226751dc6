package types

import (
	"github.com/google/uuid"
)

// ReportID represents a report identifier assigned by the report API
type ReportID string

// String returns the string representation
func (id ReportID) String() string {
	return string(id)
}

// HeatmapSessionID identifies a heat map session held by the server
type HeatmapSessionID string

// String returns the string representation
func (id HeatmapSessionID) String() string {
	return string(id)
}

// NewHeatmapSessionID creates a new HeatmapSessionID
func NewHeatmapSessionID() HeatmapSessionID {
	return HeatmapSessionID(uuid.New().String())
}

// SlackChannelID represents a Slack channel identifier
type SlackChannelID string

// String returns the string representation
func (id SlackChannelID) String() string {
	return string(id)
}
