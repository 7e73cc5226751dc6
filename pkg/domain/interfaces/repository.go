package interfaces

//go:generate moq -out mocks/repository_mock.go -pkg mocks . ReportRepository AddressCache

import (
	"context"

	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
)

// ReportRepository is the read-only source of citizen reports. Returned
// lists contain only well-formed reports; malformed entries are dropped.
type ReportRepository interface {
	GetAllReports(ctx context.Context, query model.ReportQuery) ([]*model.Report, error)
	// GetReportByID returns model.ErrReportNotFound when the report does not exist
	GetReportByID(ctx context.Context, id types.ReportID) (*model.Report, error)
	GetPaginatedReports(ctx context.Context, query model.PageQuery) (*model.ReportPage, error)
	GetReportsByArea(ctx context.Context, query model.AreaQuery) ([]*model.Report, error)

	// Vocabulary operations
	GetCategories(ctx context.Context) ([]string, error)
	GetStatuses(ctx context.Context) ([]string, error)
}

// AddressCache stores reverse geocoded addresses by coordinate key. Entries
// never expire.
type AddressCache interface {
	// GetAddress returns nil without error on a miss
	GetAddress(ctx context.Context, key string) (*model.Address, error)
	PutAddress(ctx context.Context, key string, address *model.Address) error
	Close() error
}
