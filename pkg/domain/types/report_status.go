package types

// ReportStatus represents the workflow status of a report as published by the report API
type ReportStatus string

const (
	ReportStatusUrgent     ReportStatus = "Urgente"
	ReportStatusInProgress ReportStatus = "En proceso"
	ReportStatusPending    ReportStatus = "Pendiente"
)

// AllReportStatuses returns the known statuses in display order
func AllReportStatuses() []ReportStatus {
	return []ReportStatus{ReportStatusUrgent, ReportStatusInProgress, ReportStatusPending}
}

// String returns the string representation of the status
func (s ReportStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one of the known values.
// Unknown statuses are still carried on reports, they are only not filterable.
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusUrgent, ReportStatusInProgress, ReportStatusPending:
		return true
	default:
		return false
	}
}

// Color returns the badge color used for the status
func (s ReportStatus) Color() string {
	switch s {
	case ReportStatusUrgent:
		return "#F44336"
	case ReportStatusInProgress:
		return "#FF9800"
	case ReportStatusPending:
		return "#2196F3"
	default:
		return "#757575"
	}
}
