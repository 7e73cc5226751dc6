package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	slackSvc "github.com/secmon-lab/sirse/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

// Slack holds the configuration of report sharing to Slack
type Slack struct {
	OAuthToken    string
	ChannelID     string
	SigningSecret string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for posting shared reports",
			Category:    "Slack",
			Sources:     cli.EnvVars("SIRSE_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID shared reports are posted to",
			Category:    "Slack",
			Sources:     cli.EnvVars("SIRSE_SLACK_CHANNEL"),
			Destination: &s.ChannelID,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack signing secret; enables the /sirse slash command",
			Category:    "Slack",
			Sources:     cli.EnvVars("SIRSE_SLACK_SIGNING_SECRET"),
			Destination: &s.SigningSecret,
		},
	}
}

// Configure creates the Slack service, or nil when sharing is not configured
func (s *Slack) Configure(ctx context.Context) *slackSvc.Service {
	if !s.IsConfigured() {
		ctxlog.From(ctx).Warn("Slack not configured - report sharing is disabled")
		return nil
	}

	ctxlog.From(ctx).Info("Configuring Slack client", "channel", s.ChannelID)
	return slackSvc.New(s.OAuthToken, types.SlackChannelID(s.ChannelID))
}

// IsConfigured checks if both the token and the channel are set
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.ChannelID != ""
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.ChannelID),
		slog.Bool("has_signing_secret", s.SigningSecret != ""),
	)
}
