package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/secmon-lab/sirse/pkg/service/geocode"
	slackSvc "github.com/secmon-lab/sirse/pkg/service/slack"
	"github.com/secmon-lab/sirse/pkg/utils/geo"
)

// DefaultDeepLinkBase is the app URL scheme that opens a report
const DefaultDeepLinkBase = "sirse://"

// ReportsConfig holds configuration for Reports
type ReportsConfig struct {
	deepLinkBase string
	location     *time.Location
	now          func() time.Time
}

// ReportsOption is a functional option for configuring Reports
type ReportsOption func(*ReportsConfig)

// WithDeepLinkBase sets the prefix of report links
func WithDeepLinkBase(base string) ReportsOption {
	return func(c *ReportsConfig) {
		c.deepLinkBase = base
	}
}

// WithTimeLocation sets the time zone of formatted timestamps
func WithTimeLocation(loc *time.Location) ReportsOption {
	return func(c *ReportsConfig) {
		c.location = loc
	}
}

// WithReportsClock replaces the clock used for relative times
func WithReportsClock(now func() time.Time) ReportsOption {
	return func(c *ReportsConfig) {
		c.now = now
	}
}

// NewReportsConfig creates a new ReportsConfig with default values and optional settings
func NewReportsConfig(opts ...ReportsOption) *ReportsConfig {
	config := &ReportsConfig{
		deepLinkBase: DefaultDeepLinkBase,
		location:     time.Local,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// ReportDetail is everything the detail screen of a report shows
type ReportDetail struct {
	Report        *model.Report         `json:"report"`
	Category      model.DisplayCategory `json:"category"`
	StatusColor   string                `json:"statusColor"`
	SeverityColor string                `json:"severityColor"`
	Address       geocode.ReportAddress `json:"address"`
	LocationText  string                `json:"locationText"`
	FormattedTime string                `json:"formattedTime"`
	TimeAgo       string                `json:"timeAgo"`
	DistanceKm    *float64              `json:"distanceKm,omitempty"`
	Distance      string                `json:"distance,omitempty"`
	ShareMessage  string                `json:"shareMessage"`
	DeepLink      string                `json:"deepLink"`
}

// ShareResult is the outcome of sharing a report to Slack
type ShareResult struct {
	Message   string               `json:"message"`
	DeepLink  string               `json:"deepLink"`
	ChannelID types.SlackChannelID `json:"channelId"`
	Timestamp string               `json:"timestamp"`
}

// StatusInfo is a report status with its badge color
type StatusInfo struct {
	Status types.ReportStatus `json:"status"`
	Color  string             `json:"color"`
	Known  bool               `json:"known"`
}

// Reports serves single reports and the vocabularies
type Reports struct {
	repo     interfaces.ReportRepository
	geocoder interfaces.Geocoder
	taxonomy *model.CategoryTaxonomy
	slack    *slackSvc.Service
	config   *ReportsConfig
}

// NewReports creates a new Reports instance. geocoder and slack may be nil.
func NewReports(repo interfaces.ReportRepository, geocoder interfaces.Geocoder, taxonomy *model.CategoryTaxonomy, slack *slackSvc.Service, config *ReportsConfig) *Reports {
	if config == nil {
		config = NewReportsConfig()
	}
	return &Reports{
		repo:     repo,
		geocoder: geocoder,
		taxonomy: taxonomy,
		slack:    slack,
		config:   config,
	}
}

// Detail loads a report and resolves its address. origin, when given, is
// the user position used for the distance.
func (u *Reports) Detail(ctx context.Context, id types.ReportID, origin *model.Coordinates) (*ReportDetail, error) {
	report, err := u.repo.GetReportByID(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	addr := geocode.ResolveReportAddress(ctx, u.geocoder, report)
	locationText := addr.Full
	if report.NeedsGeocoding() {
		locationText = addr.Short
	}

	detail := &ReportDetail{
		Report:        report,
		Category:      u.taxonomy.Resolve(report.Category),
		StatusColor:   report.Status.Color(),
		SeverityColor: report.Severity.Color(),
		Address:       addr,
		LocationText:  locationText,
		FormattedTime: FormatTimestamp(report.ReportedAtTimestamp, u.config.location),
		TimeAgo:       TimeAgo(report.ReportedTime(), u.config.now()),
		DeepLink:      u.DeepLink(report.ID),
	}
	detail.ShareMessage = ShareMessage(report, locationText, detail.FormattedTime)

	if origin != nil && origin.IsValid() {
		km := geo.DistanceKm(*origin, report.Coordinates)
		detail.DistanceKm = &km
		detail.Distance = geo.FormatDistance(km)
	}
	return detail, nil
}

// Share posts the share message of a report to the configured Slack channel
func (u *Reports) Share(ctx context.Context, id types.ReportID) (*ShareResult, error) {
	if u.slack == nil {
		return nil, goerr.Wrap(model.ErrShareNotConfigured, "Slack is not configured")
	}

	detail, err := u.Detail(ctx, id, nil)
	if err != nil {
		return nil, err
	}

	text := detail.ShareMessage + "\n\n👉 Ver más: " + detail.DeepLink
	ts, err := u.slack.ShareReport(ctx, detail.Report, text, detail.DeepLink)
	if err != nil {
		return nil, err
	}

	ctxlog.From(ctx).Info("report shared",
		"id", id,
		"channelID", u.slack.ChannelID(),
		"timestamp", ts,
	)

	return &ShareResult{
		Message:   text,
		DeepLink:  detail.DeepLink,
		ChannelID: u.slack.ChannelID(),
		Timestamp: ts,
	}, nil
}

// DeepLink returns the app link of a report
func (u *Reports) DeepLink(id types.ReportID) string {
	return u.config.deepLinkBase + "report/" + id.String()
}

// Categories returns the display taxonomy
func (u *Reports) Categories() []model.DisplayCategory {
	return u.taxonomy.All()
}

// Statuses returns the status vocabulary of the report API
func (u *Reports) Statuses(ctx context.Context) ([]StatusInfo, error) {
	names, err := u.repo.GetStatuses(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get statuses")
	}

	statuses := make([]StatusInfo, 0, len(names))
	for _, name := range names {
		status := types.ReportStatus(name)
		statuses = append(statuses, StatusInfo{
			Status: status,
			Color:  status.Color(),
			Known:  status.IsValid(),
		})
	}
	return statuses, nil
}

// ShareMessage renders the text shared for a report
func ShareMessage(report *model.Report, locationText, formattedTime string) string {
	return fmt.Sprintf("🚨 Reporte SIRSE: %s\n\n📋 %s\n\n📍 %s\n🕒 %s\n📊 Estado: %s",
		report.Title,
		report.Description,
		locationText,
		formattedTime,
		report.Status,
	)
}

// TimeAgo renders the age of a report in minutes, hours or days
func TimeAgo(t, now time.Time) string {
	minutes := int(now.Sub(t) / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case minutes < 60:
		return fmt.Sprintf("Hace %d min", minutes)
	case hours < 24:
		return fmt.Sprintf("Hace %d %s", hours, plural(hours, "hora", "horas"))
	default:
		return fmt.Sprintf("Hace %d %s", days, plural(days, "día", "días"))
	}
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatTimestamp renders an epoch timestamp as "02 de noviembre de 2025,
// 19:56". Zero means unknown.
func FormatTimestamp(ts int64, loc *time.Location) string {
	if ts == 0 {
		return "Fecha no disponible"
	}
	if loc == nil {
		loc = time.Local
	}
	t := model.TimeFromEpoch(ts).In(loc)
	return fmt.Sprintf("%02d de %s de %d, %02d:%02d",
		t.Day(), spanishMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

