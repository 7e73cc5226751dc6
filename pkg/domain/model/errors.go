package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrReportNotFound       = goerr.New("report not found")
	ErrPermissionDenied     = goerr.New("location permission denied")
	ErrLocationUnavailable  = goerr.New("location unavailable")
	ErrHeatmapNotFound      = goerr.New("heatmap session not found")
	ErrInvalidFilter        = goerr.New("invalid filter")
	ErrInvalidTimeRange     = goerr.New("invalid time range")
	ErrInvalidBounds        = goerr.New("invalid bounds")
	ErrCategoryNotFound     = goerr.New("category not found")
	ErrShareNotConfigured   = goerr.New("share destination not configured")
	ErrAddressNotResolvable = goerr.New("address not resolvable")
)

// Tags for failures that are classified rather than matched by identity
var (
	// TagNetworkFailure marks timeouts, transport errors, non-2xx responses
	// and undecodable bodies from remote services
	TagNetworkFailure = goerr.NewTag("network_failure")
)
