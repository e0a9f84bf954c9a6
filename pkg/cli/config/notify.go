package config

import (
	"time"

	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/infra/sentry"
	"github.com/m-mizutani/svnrelease/pkg/infra/slack"
	"github.com/urfave/cli/v3"
)

const sentryFlushTimeout = 5 * time.Second

// Notify holds configuration of pipeline result notifiers
type Notify struct {
	SlackWebhookURL string
	SlackChannel    string
	SentryDSN       string
	SentryEnv       string
}

// Flags returns CLI flags for notifier configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to post release results to",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("SVNRELEASE_SLACK_WEBHOOK_URL"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel overriding the webhook default",
			Destination: &c.SlackChannel,
			Sources:     cli.EnvVars("SVNRELEASE_SLACK_CHANNEL"),
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN to report failed releases to",
			Destination: &c.SentryDSN,
			Sources:     cli.EnvVars("SVNRELEASE_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Destination: &c.SentryEnv,
			Sources:     cli.EnvVars("SVNRELEASE_SENTRY_ENV"),
		},
	}
}

// Notifiers returns the configured notifiers. flush must be called before
// the process exits.
func (c *Notify) Notifiers() (notifiers []interfaces.Notifier, flush func(), err error) {
	flush = func() {}

	if c.SlackWebhookURL != "" {
		notifiers = append(notifiers, slack.New(c.SlackWebhookURL, slack.WithChannel(c.SlackChannel)))
	}

	if c.SentryDSN != "" {
		reporter, err := sentry.New(c.SentryDSN, c.SentryEnv)
		if err != nil {
			return nil, flush, err
		}
		notifiers = append(notifiers, reporter)
		flush = func() { reporter.Flush(sentryFlushTimeout) }
	}

	return notifiers, flush, nil
}
