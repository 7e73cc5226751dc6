// Package area selects the reports visible on the map for a viewport,
// category and age window.
package area

import (
	"math"
	"time"

	"github.com/secmon-lab/sirse/pkg/domain/model"
)

// Criteria describes which reports are visible. Zero values disable the
// corresponding condition.
type Criteria struct {
	Bounds     *model.GeographicBounds
	CategoryID string
	Window     time.Duration
	Now        time.Time
}

// Engine filters report sets. It is stateless apart from the taxonomy and
// safe for concurrent use.
type Engine struct {
	taxonomy *model.CategoryTaxonomy
}

// New creates a new Engine
func New(taxonomy *model.CategoryTaxonomy) *Engine {
	return &Engine{taxonomy: taxonomy}
}

// Filter returns the reports matching c in their input order. Reports with
// malformed coordinates are never visible. The input slice is not modified.
func (e *Engine) Filter(reports []*model.Report, c Criteria) []*model.Report {
	result := make([]*model.Report, 0, len(reports))
	for _, r := range reports {
		if e.matches(r, c) {
			result = append(result, r)
		}
	}
	return result
}

func (e *Engine) matches(r *model.Report, c Criteria) bool {
	if r == nil || !r.Coordinates.IsValid() {
		return false
	}
	if c.Bounds != nil && !c.Bounds.Contains(r.Coordinates) {
		return false
	}
	if c.CategoryID != "" && e.taxonomy.Resolve(r.Category).ID != c.CategoryID {
		return false
	}
	if c.Window > 0 && r.Age(c.Now) > c.Window {
		return false
	}
	return true
}

// CategoryStats counts reports per display category. Every category of the
// taxonomy is listed in configuration order, including empty ones.
// Percentages are rounded to whole numbers.
func (e *Engine) CategoryStats(reports []*model.Report) []model.CategoryStat {
	counts := make(map[string]int)
	for _, r := range reports {
		counts[e.taxonomy.Resolve(r.Category).ID]++
	}

	all := e.taxonomy.All()
	stats := make([]model.CategoryStat, 0, len(all))
	for _, cat := range all {
		stat := model.CategoryStat{
			Category: cat,
			Count:    counts[cat.ID],
		}
		if len(reports) > 0 {
			stat.Percentage = math.Round(float64(stat.Count) / float64(len(reports)) * 100)
		}
		stats = append(stats, stat)
	}
	return stats
}
