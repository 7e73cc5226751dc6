package repository

import (
	"context"
	"encoding/json"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
)

// Memory implements ReportRepository over an in-memory report set. It
// mirrors the server side filtering and pagination of the report API and
// backs development mode and tests.
type Memory struct {
	mu      sync.RWMutex
	reports []*model.Report
	now     func() time.Time
}

var _ interfaces.ReportRepository = (*Memory)(nil)

// NewMemory creates a new memory repository holding copies of reports.
// Invalid reports are skipped.
func NewMemory(reports ...*model.Report) *Memory {
	m := &Memory{now: time.Now}
	m.SetReports(reports)
	return m
}

// LoadMemoryFromFile creates a memory repository from a JSON array of reports
// in the report API format
func LoadMemoryFromFile(ctx context.Context, path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read reports file", goerr.V("path", path))
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to parse reports file", goerr.V("path", path))
	}

	reports, _ := decodeReports(ctx, path, raw)
	return NewMemory(reports...), nil
}

// SetClock replaces the clock used for time range filtering
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// SetReports replaces the stored report set
func (m *Memory) SetReports(reports []*model.Report) {
	stored := make([]*model.Report, 0, len(reports))
	for _, r := range reports {
		if r == nil || r.Validate() != nil {
			continue
		}
		stored = append(stored, r.Copy())
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = stored
}

// GetAllReports returns every report matching the query
func (m *Memory) GetAllReports(ctx context.Context, query model.ReportQuery) ([]*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filter(query, func(*model.Report) bool { return true }), nil
}

// GetReportByID retrieves a report by ID
func (m *Memory) GetReportByID(ctx context.Context, id types.ReportID) (*model.Report, error) {
	if id == "" {
		return nil, goerr.New("report ID is empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.reports {
		if r.ID == id {
			return r.Copy(), nil
		}
	}
	return nil, goerr.Wrap(model.ErrReportNotFound, "failed to get report", goerr.V("id", id))
}

// GetPaginatedReports returns one page of the reports matching the query
func (m *Memory) GetPaginatedReports(ctx context.Context, query model.PageQuery) (*model.ReportPage, error) {
	all, err := m.GetAllReports(ctx, query.ReportQuery)
	if err != nil {
		return nil, err
	}
	return model.PaginateReports(all, query.Page, query.Limit), nil
}

// GetReportsByArea returns reports inside the bounds and time range
func (m *Memory) GetReportsByArea(ctx context.Context, query model.AreaQuery) ([]*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := m.now()
	matched := m.filter(query.ReportQuery, func(r *model.Report) bool {
		if !query.Bounds.Contains(r.Coordinates) {
			return false
		}
		if query.TimeRange != "" && r.Age(now) > query.TimeRange.Duration() {
			return false
		}
		return true
	})

	if query.Page > 0 && query.Limit > 0 {
		return model.PaginateReports(matched, query.Page, query.Limit).Data, nil
	}
	return matched, nil
}

// GetCategories returns the distinct API categories in first seen order
func (m *Memory) GetCategories(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for _, r := range m.reports {
		if r.Category != "" && !slices.Contains(names, r.Category) {
			names = append(names, r.Category)
		}
	}
	return names, nil
}

// GetStatuses returns the known statuses
func (m *Memory) GetStatuses(ctx context.Context) ([]string, error) {
	statuses := types.AllReportStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names, nil
}

// filter must be called with the read lock held
func (m *Memory) filter(query model.ReportQuery, match func(*model.Report) bool) []*model.Report {
	result := make([]*model.Report, 0, len(m.reports))
	for _, r := range m.reports {
		if query.Category != "" && r.Category != query.Category {
			continue
		}
		if query.Status != "" && r.Status != query.Status {
			continue
		}
		if !match(r) {
			continue
		}
		result = append(result, r.Copy())
	}
	return result
}
