package repository

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
)

// reportedAtLayout is the layout of the human readable reportedAt field
const reportedAtLayout = "2006-01-02 15:04:05"

// The PHP endpoints are loose about JSON types: numbers arrive as strings
// and identifiers as numbers depending on the driver. The flex types accept
// both forms.

type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return goerr.Wrap(err, "expected string or number")
	}
	*s = flexString(n.String())
	return nil
}

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return goerr.Wrap(err, "invalid numeric string", goerr.V("value", v))
		}
		*f = flexFloat(parsed)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type flexInt int64

func (i *flexInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	var f flexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*i = flexInt(f)
	return nil
}

type wireReport struct {
	ID          flexString `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Coordinates *struct {
		Latitude  *flexFloat `json:"latitude"`
		Longitude *flexFloat `json:"longitude"`
	} `json:"coordinates"`
	Address             string     `json:"address"`
	ReportedAt          string     `json:"reportedAt"`
	ReportedAtTimestamp flexInt    `json:"reportedAtTimestamp"`
	ReporterName        string     `json:"reporterName"`
	ReporterEmail       string     `json:"reporterEmail"`
	Photos              []string   `json:"photos"`
	Severity            string     `json:"severity"`
	Votes               flexInt    `json:"votes"`
	Comments            flexInt    `json:"comments"`
	MarkerColor         string     `json:"markerColor"`
}

// decodeReport converts one API record into a validated report
func decodeReport(data json.RawMessage) (*model.Report, error) {
	var w wireReport
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, goerr.Wrap(err, "failed to decode report")
	}
	if w.Coordinates == nil || w.Coordinates.Latitude == nil || w.Coordinates.Longitude == nil {
		return nil, goerr.New("report has no coordinates", goerr.V("id", w.ID))
	}

	report := &model.Report{
		ID:          types.ReportID(strings.TrimSpace(string(w.ID))),
		Title:       w.Title,
		Description: w.Description,
		Category:    w.Category,
		Status:      types.ReportStatus(w.Status),
		Coordinates: model.Coordinates{
			Latitude:  float64(*w.Coordinates.Latitude),
			Longitude: float64(*w.Coordinates.Longitude),
		},
		Address:             w.Address,
		ReportedAt:          w.ReportedAt,
		ReportedAtTimestamp: int64(w.ReportedAtTimestamp),
		ReporterName:        w.ReporterName,
		ReporterEmail:       w.ReporterEmail,
		Photos:              w.Photos,
		Severity:            model.Severity(w.Severity),
		Votes:               int(w.Votes),
		Comments:            int(w.Comments),
		MarkerColor:         w.MarkerColor,
	}

	if report.ReportedAtTimestamp == 0 && report.ReportedAt != "" {
		if t, err := time.ParseInLocation(reportedAtLayout, report.ReportedAt, time.Local); err == nil {
			report.ReportedAtTimestamp = t.UnixMilli()
		}
	}
	// normalize to milliseconds so every consumer sees one unit
	report.ReportedAtTimestamp = model.TimeFromEpoch(report.ReportedAtTimestamp).UnixMilli()

	if err := report.Validate(); err != nil {
		return nil, err
	}
	return report, nil
}
