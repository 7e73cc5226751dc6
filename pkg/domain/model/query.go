package model

import "github.com/secmon-lab/sirse/pkg/domain/types"

// ReportQuery holds the optional server side filters of the list endpoints.
// Category is an API category name, not a display category.
type ReportQuery struct {
	Category string
	Status   types.ReportStatus
}

// PageQuery selects one page of the paginated endpoint. Page is 1-based.
type PageQuery struct {
	ReportQuery
	Page  int
	Limit int
}

// AreaQuery selects reports inside a bounding box
type AreaQuery struct {
	ReportQuery
	Bounds    GeographicBounds
	TimeRange TimeRange
	Page      int
	Limit     int
}
