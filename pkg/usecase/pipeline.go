package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

// Pipeline executes release steps in order and stops at the first failure.
// Steps already applied are not rolled back. A Pipeline runs at most once.
type Pipeline struct {
	name      string
	steps     []interfaces.ReleaseStep
	gateway   interfaces.SvnGateway
	notifiers []interfaces.Notifier
	state     model.PipelineState
}

// PipelineOption is a functional option for Pipeline
type PipelineOption func(*Pipeline)

// WithNotifier adds a notifier called when the pipeline reaches a terminal state
func WithNotifier(n interfaces.Notifier) PipelineOption {
	return func(p *Pipeline) {
		p.notifiers = append(p.notifiers, n)
	}
}

// NewPipeline creates a new Pipeline in the idle state
func NewPipeline(name string, gateway interfaces.SvnGateway, steps []interfaces.ReleaseStep, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		name:    name,
		steps:   steps,
		gateway: gateway,
		state:   model.PipelineIdle,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// State returns the current pipeline state
func (p *Pipeline) State() model.PipelineState {
	return p.state
}

// Steps returns the step names in execution order
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Run executes all steps against cfg. The returned error is the error of the
// failed step, if any.
func (p *Pipeline) Run(ctx context.Context, cfg *model.ReleaseConfig) (*model.PipelineResult, error) {
	if p.state != model.PipelineIdle {
		return nil, goerr.New("pipeline has already been started",
			goerr.V("pipeline", p.name),
			goerr.V("state", p.state),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	result := &model.PipelineResult{
		RunID:     uuid.New(),
		Name:      p.name,
		StartedAt: time.Now(),
	}
	p.transit(result, model.PipelineRunning)

	logger := ctxlog.From(ctx).With(
		"run_id", result.RunID.String(),
		"pipeline", p.name,
	)
	logger.Info("Starting release pipeline", "steps", p.Steps())

	for _, step := range p.steps {
		stepLogger := logger.With("step", step.Name())
		stepCtx := ctxlog.With(ctx, stepLogger)

		result.Executed = append(result.Executed, step.Name())
		stepLogger.Debug("Running release step")

		if err := step.Run(stepCtx, cfg, p.gateway); err != nil {
			stepLogger.Error("Release step failed", "error", err)
			result.FailedStep = step.Name()
			result.Err = err
			break
		}
	}

	result.FinishedAt = time.Now()
	if result.Err != nil {
		p.transit(result, model.PipelineFailed)
	} else {
		p.transit(result, model.PipelineSucceeded)
		logger.Info("Release pipeline succeeded", "duration", result.Duration())
	}

	p.notify(ctxlog.With(ctx, logger), result)

	return result, result.Err
}

func (p *Pipeline) transit(result *model.PipelineResult, state model.PipelineState) {
	p.state = state
	result.State = state
}

func (p *Pipeline) notify(ctx context.Context, result *model.PipelineResult) {
	logger := ctxlog.From(ctx)

	for _, n := range p.notifiers {
		if err := n.Notify(ctx, result); err != nil {
			logger.Warn("Failed to notify pipeline result", "error", err)
		}
	}
}
