package model

// ReportPage is one page of reports as returned by the paginated endpoint
type ReportPage struct {
	Data       []*Report `json:"data"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
	HasMore    bool      `json:"hasMore"`
}

// PaginateReports slices an already filtered list the same way the API does.
// Pages are 1-based; an out of range page yields an empty page.
func PaginateReports(reports []*Report, page, limit int) *ReportPage {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(reports)
	result := &ReportPage{
		Data:  []*Report{},
		Page:  page,
		Limit: limit,
		Total: total,
	}
	if total == 0 {
		return result
	}

	result.TotalPages = (total + limit - 1) / limit
	result.HasMore = page < result.TotalPages

	start := (page - 1) * limit
	if start >= total {
		return result
	}
	end := min(start+limit, total)
	result.Data = append(result.Data, reports[start:end]...)
	return result
}
