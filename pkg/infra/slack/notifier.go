// Package slack posts release pipeline results to a Slack incoming webhook.
package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Notifier sends pipeline results to an incoming webhook
type Notifier struct {
	webhookURL string
	channel    string
}

var _ interfaces.Notifier = (*Notifier)(nil)

// Option is a functional option for Notifier
type Option func(*Notifier)

// WithChannel overrides the channel configured for the webhook
func WithChannel(channel string) Option {
	return func(n *Notifier) {
		n.channel = channel
	}
}

// New creates a new Slack notifier
func New(webhookURL string, opts ...Option) *Notifier {
	n := &Notifier{webhookURL: webhookURL}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify posts a summary of result
func (n *Notifier) Notify(ctx context.Context, result *model.PipelineResult) error {
	msg := Message(result)
	msg.Channel = n.channel

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post slack webhook",
			goerr.V("run_id", result.RunID.String()),
		)
	}
	return nil
}

// Message builds the webhook payload for result
func Message(result *model.PipelineResult) *slack.WebhookMessage {
	color := "good"
	if result.State == model.PipelineFailed {
		color = "danger"
	}

	fields := []slack.AttachmentField{
		{Title: "Run ID", Value: result.RunID.String(), Short: true},
		{Title: "Duration", Value: result.Duration().String(), Short: true},
		{Title: "Steps", Value: strings.Join(result.Executed, " → ")},
	}
	if result.FailedStep != "" {
		fields = append(fields, slack.AttachmentField{Title: "Failed step", Value: result.FailedStep, Short: true})
	}
	if result.Err != nil {
		fields = append(fields, slack.AttachmentField{Title: "Error", Value: result.Err.Error()})
	}

	return &slack.WebhookMessage{
		Text: fmt.Sprintf("svn release `%s` %s", result.Name, result.State),
		Attachments: []slack.Attachment{
			{
				Color:  color,
				Fields: fields,
			},
		},
	}
}
