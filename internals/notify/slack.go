package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

// SlackNotifier mirrors failure toasts into a Slack channel, so archive
// problems are visible even when nobody has the editor open.
type SlackNotifier struct {
	client    *slack.Client
	channelID string
	log       *slog.Logger
}

func NewSlackNotifier(botToken, channelID string, log *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		client:    slack.New(botToken),
		channelID: channelID,
		log:       log,
	}
}

func (n *SlackNotifier) Success(ctx context.Context, message string) {
	// Success toasts stay in the editor; Slack only hears about failures.
}

func (n *SlackNotifier) Error(ctx context.Context, message string) {
	text := fmt.Sprintf(":warning: *gitpress*\n%s", message)
	_, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		n.log.Warn("slack notify failed", "err", err)
	}
}
