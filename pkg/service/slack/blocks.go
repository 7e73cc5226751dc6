package slack

import (
	"fmt"

	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Slack rejects texts longer than these
const (
	maxHeaderText  = 150
	maxSectionText = 3000
)

// GetStatusEmoji returns the emoji shown next to a report status
func GetStatusEmoji(status types.ReportStatus) string {
	switch status {
	case types.ReportStatusUrgent:
		return "🔴"
	case types.ReportStatusInProgress:
		return "🟠"
	case types.ReportStatusPending:
		return "🔵"
	default:
		return "⚪"
	}
}

// BuildReportBlocks renders a shared report
func BuildReportBlocks(report *model.Report, text, deepLink string) []slack.Block {
	title := report.Title
	if title == "" {
		title = "Reporte " + report.ID.String()
	}

	title = truncate(title, maxHeaderText)
	body := truncate(text, maxSectionText)

	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, title, true, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.PlainTextType, body, true, false),
			nil, nil,
		),
	}

	elements := []slack.MixedElement{
		slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("%s *%s*", GetStatusEmoji(report.Status), report.Status), false, false),
	}
	if report.Category != "" {
		elements = append(elements, slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("Categoría: %s", report.Category), false, false))
	}
	if deepLink != "" {
		elements = append(elements, slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("<%s|Ver más>", deepLink), false, false))
	}
	blocks = append(blocks, slack.NewContextBlock("", elements...))

	return blocks
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
