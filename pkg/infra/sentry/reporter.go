// Package sentry reports failed release runs to Sentry.
package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

// Reporter captures failed pipeline runs as Sentry exceptions
type Reporter struct {
	hub *sentry.Hub
}

var _ interfaces.Notifier = (*Reporter)(nil)

// New creates a Reporter sending to dsn
func New(dsn, environment string) (*Reporter, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Release:     types.Version,
		Environment: environment,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sentry client")
	}

	return NewWithClient(client), nil
}

// NewWithClient creates a Reporter using an existing client
func NewWithClient(client *sentry.Client) *Reporter {
	return &Reporter{
		hub: sentry.NewHub(client, sentry.NewScope()),
	}
}

// Notify captures result.Err when the run failed. Successful runs are not
// reported.
func (r *Reporter) Notify(_ context.Context, result *model.PipelineResult) error {
	if result.State != model.PipelineFailed || result.Err == nil {
		return nil
	}

	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("run_id", result.RunID.String())
		scope.SetTag("pipeline", result.Name)
		scope.SetTag("failed_step", result.FailedStep)
		r.hub.CaptureException(result.Err)
	})

	return nil
}

// Flush waits until buffered events are sent or timeout expires
func (r *Reporter) Flush(timeout time.Duration) bool {
	return r.hub.Flush(timeout)
}
