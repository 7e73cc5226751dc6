package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	slackSvc "github.com/secmon-lab/sirse/pkg/service/slack"
	"github.com/secmon-lab/sirse/pkg/usecase"
	"github.com/slack-go/slack"
)

// maxListed is the number of reports listed in a command response
const maxListed = 5

const helpText = "Uso:\n" +
	"• `/sirse <id>` muestra un reporte\n" +
	"• `/sirse cercanos [km]` lista reportes cercanos\n" +
	"• `/sirse recientes` lista reportes de las últimas 24 horas"

// Handler answers the SIRSE slash command. Responses are ephemeral and
// only visible to the user who ran the command.
type Handler struct {
	signingSecret string
	reports       *usecase.Reports
	feed          *usecase.Feed
}

// NewHandler creates a new Slack command handler
func NewHandler(signingSecret string, reports *usecase.Reports, feed *usecase.Feed) *Handler {
	return &Handler{
		signingSecret: signingSecret,
		reports:       reports,
		feed:          feed,
	}
}

// HandleCommand handles a slash command request
func (h *Handler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	if h.signingSecret == "" {
		h.writeError(w, r.Context(), goerr.New("Slack commands not configured"), http.StatusServiceUnavailable)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, r.Context(), goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.verifySlackSignature(r, body); err != nil {
		ctxlog.From(r.Context()).Warn("Invalid Slack signature", "error", err)
		h.writeError(w, r.Context(), goerr.Wrap(err, "invalid signature"), http.StatusUnauthorized)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	cmd, err := slack.SlashCommandParse(r)
	if err != nil {
		h.writeError(w, r.Context(), goerr.Wrap(err, "failed to parse command"), http.StatusBadRequest)
		return
	}

	ctxlog.From(r.Context()).Debug("Slack command received",
		"command", cmd.Command,
		"text", cmd.Text,
		"user", cmd.UserID,
	)

	msg := h.respond(r.Context(), cmd.Text)
	msg.ResponseType = slack.ResponseTypeEphemeral

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write command response", "error", err)
	}
}

func (h *Handler) respond(ctx context.Context, text string) *slack.Msg {
	args := strings.Fields(text)
	if len(args) == 0 {
		return &slack.Msg{Text: helpText}
	}

	switch strings.ToLower(args[0]) {
	case "ayuda", "help":
		return &slack.Msg{Text: helpText}

	case "cercanos":
		radius := model.DefaultNearbyRadiusKm
		if len(args) > 1 {
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil || v <= 0 {
				return &slack.Msg{Text: fmt.Sprintf("Radio inválido: %s", args[1])}
			}
			radius = v
		}
		return h.list(ctx, model.NearbyFilter{RadiusKm: radius})

	case "recientes":
		return h.list(ctx, model.RecentFilter{Window: model.DefaultRecentWindow})

	default:
		return h.report(ctx, types.ReportID(args[0]))
	}
}

func (h *Handler) report(ctx context.Context, id types.ReportID) *slack.Msg {
	detail, err := h.reports.Detail(ctx, id, nil)
	if errors.Is(err, model.ErrReportNotFound) {
		return &slack.Msg{Text: fmt.Sprintf("No se encontró el reporte %s.", id)}
	}
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to load report for Slack command", "id", id, "error", err)
		return &slack.Msg{Text: model.MessageLoadFailed}
	}

	return &slack.Msg{
		Text: detail.ShareMessage,
		Blocks: slack.Blocks{
			BlockSet: slackSvc.BuildReportBlocks(detail.Report, detail.ShareMessage, detail.DeepLink),
		},
	}
}

func (h *Handler) list(ctx context.Context, filter model.Filter) *slack.Msg {
	page, err := h.feed.List(ctx, usecase.FeedRequest{Filter: filter, Page: 1, Limit: maxListed})
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to list reports for Slack command", "error", err)
		return &slack.Msg{Text: model.MessageLoadFailed}
	}
	if page.Empty {
		return &slack.Msg{Text: model.MessageNoReports}
	}

	lines := make([]string, 0, len(page.Items)+1)
	lines = append(lines, fmt.Sprintf("%d reporte(s)", page.Total))
	for _, card := range page.Items {
		line := fmt.Sprintf("%s *%s* (%s) %s · %s",
			slackSvc.GetStatusEmoji(card.Report.Status),
			card.Report.Title, card.Report.ID, card.ShortAddress, card.TimeAgo)
		if card.Distance != "" {
			line += " · " + card.Distance
		}
		lines = append(lines, line)
	}
	return &slack.Msg{Text: strings.Join(lines, "\n")}
}

// verifySlackSignature verifies the Slack request signature and timestamp
func (h *Handler) verifySlackSignature(r *http.Request, body []byte) error {
	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		return goerr.Wrap(err, "missing or stale signature headers")
	}
	if _, err := verifier.Write(body); err != nil {
		return goerr.Wrap(err, "failed to hash request body")
	}
	if err := verifier.Ensure(); err != nil {
		return goerr.Wrap(err, "signature mismatch")
	}
	return nil
}

// writeError writes an error response
func (h *Handler) writeError(w http.ResponseWriter, ctx context.Context, err error, status int) {
	ctxlog.From(ctx).Debug("Slack command rejected", "status", status, "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		ctxlog.From(ctx).Error("Failed to write error response", "error", err)
	}
}
