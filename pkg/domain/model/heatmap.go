package model

import "time"

// HeatmapState is the lifecycle state of a heat map session
type HeatmapState string

const (
	HeatmapStateIdle            HeatmapState = "idle"
	HeatmapStateLoadingLocation HeatmapState = "loading_location"
	HeatmapStateLoadingReports  HeatmapState = "loading_reports"
	HeatmapStateReady           HeatmapState = "ready"
)

// CategoryStat is the share of visible reports in one display category
type CategoryStat struct {
	Category   DisplayCategory `json:"category"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// HeatmapView is an immutable snapshot of a heat map session
type HeatmapView struct {
	State            HeatmapState     `json:"state"`
	Location         Coordinates      `json:"location"`
	PermissionDenied bool             `json:"permissionDenied"`
	Bounds           GeographicBounds `json:"bounds"`
	TimeRange        TimeRange        `json:"timeRange"`
	Category         *DisplayCategory `json:"category,omitempty"`
	Clusters         []Cluster        `json:"clusters"`
	VisibleCount     int              `json:"visibleCount"`
	TotalCount       int              `json:"totalCount"`
	Stats            []CategoryStat   `json:"stats"`
	Empty            bool             `json:"empty"`
	Message          string           `json:"message,omitempty"`
	ErrorMessage     string           `json:"errorMessage,omitempty"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// User facing messages. Report data and the public taxonomy are Spanish, so
// the messages shown next to them are too.
const (
	MessageNoReports        = "No hay reportes disponibles."
	MessageOffline          = "Sin conexión a internet."
	MessageLoadFailed       = "Ocurrió un error al cargar reportes."
	MessagePermissionDenied = "SIRSE necesita acceso a tu ubicación para mostrarte reportes cercanos."
)
