package geocode

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
)

// ReportAddress is the address shown for a report
type ReportAddress struct {
	Full  string `json:"full"`
	Short string `json:"short"`
	// Geocoded is true when the address came from reverse geocoding
	Geocoded bool `json:"geocoded"`
}

// ResolveReportAddress returns the display address of a report. Reports
// submitted without a postal address are reverse geocoded; when that fails
// the coordinates are shown instead. geocoder may be nil.
func ResolveReportAddress(ctx context.Context, geocoder interfaces.Geocoder, report *model.Report) ReportAddress {
	if !report.NeedsGeocoding() {
		if report.Address == "" {
			label := report.Coordinates.Label()
			return ReportAddress{Full: label, Short: label}
		}
		return ReportAddress{
			Full:  report.Address,
			Short: report.ShortAddress(),
		}
	}

	label := report.Coordinates.Label()
	if geocoder == nil {
		return ReportAddress{Full: label, Short: label}
	}

	addr, err := geocoder.ReverseGeocode(ctx, report.Coordinates)
	if err != nil {
		ctxlog.From(ctx).Warn("failed to resolve report address",
			"id", report.ID,
			"coordinates", report.Coordinates,
			"error", err,
		)
		return ReportAddress{Full: label, Short: label}
	}

	result := ReportAddress{
		Full:     addr.Full(),
		Short:    addr.Short(),
		Geocoded: true,
	}
	if result.Full == "" {
		result.Full = label
	}
	if result.Short == "" {
		result.Short = label
	}
	return result
}
