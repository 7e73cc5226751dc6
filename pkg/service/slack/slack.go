package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sirse/pkg/domain/interfaces"
	"github.com/secmon-lab/sirse/pkg/domain/model"
	"github.com/secmon-lab/sirse/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Service shares reports to a Slack channel
type Service struct {
	client    interfaces.SlackClient
	channelID types.SlackChannelID
}

// New creates a new Slack service posting to channelID
func New(token string, channelID types.SlackChannelID) *Service {
	return NewWithClient(slack.New(token), channelID)
}

// NewWithClient creates a Slack service with an existing client
func NewWithClient(client interfaces.SlackClient, channelID types.SlackChannelID) *Service {
	return &Service{
		client:    client,
		channelID: channelID,
	}
}

// ChannelID returns the destination channel
func (s *Service) ChannelID() types.SlackChannelID {
	return s.channelID
}

// PostMessage sends a message to the configured channel
func (s *Service) PostMessage(ctx context.Context, options ...slack.MsgOption) (string, string, error) {
	channel, timestamp, err := s.client.PostMessageContext(ctx, string(s.channelID), options...)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to post message to Slack",
			goerr.V("channelID", s.channelID),
			goerr.T(model.TagNetworkFailure))
	}
	return channel, timestamp, nil
}

// ShareReport posts the share text of a report. text is the plain share
// message and the fallback for clients without block support.
func (s *Service) ShareReport(ctx context.Context, report *model.Report, text, deepLink string) (string, error) {
	_, timestamp, err := s.PostMessage(ctx,
		slack.MsgOptionText(text, false),
		slack.MsgOptionBlocks(BuildReportBlocks(report, text, deepLink)...),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to share report", goerr.V("id", report.ID))
	}
	return timestamp, nil
}
