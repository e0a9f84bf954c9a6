package interfaces

import (
	"context"

	"github.com/m-mizutani/svnrelease/pkg/domain/model"
)

// ReleaseStep is one stage of a release pipeline. Implementations keep no
// per-run state; the step logger is carried by ctx.
type ReleaseStep interface {
	Name() string
	Run(ctx context.Context, cfg *model.ReleaseConfig, gateway SvnGateway) error
}

// Notifier observes the terminal state of a pipeline run
type Notifier interface {
	Notify(ctx context.Context, result *model.PipelineResult) error
}
