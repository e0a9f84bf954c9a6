package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

type releaseUseCase struct {
	gateway   interfaces.SvnGateway
	notifiers []interfaces.Notifier
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(gateway interfaces.SvnGateway, notifiers ...interfaces.Notifier) interfaces.ReleaseUseCase {
	return &releaseUseCase{
		gateway:   gateway,
		notifiers: notifiers,
	}
}

// Steps returns the steps of preset. The tag preset ends with setting the
// development version only when one is configured.
func Steps(preset model.Preset, cfg *model.ReleaseConfig) ([]interfaces.ReleaseStep, error) {
	switch preset {
	case model.PresetVerify:
		return []interfaces.ReleaseStep{
			NewVerifyURL(),
			NewVerifyTagFolder(),
			NewVerifyBranchFolder(),
		}, nil

	case model.PresetBranch:
		return []interfaces.ReleaseStep{
			NewVerifyURL(),
			NewVerifyBranchFolder(),
			NewCreateBranch(),
			NewSetDevVersion(),
		}, nil

	case model.PresetTag:
		steps := []interfaces.ReleaseStep{
			NewVerifyURL(),
			NewVerifyTagFolder(),
			NewSetTagVersion(),
			NewCreateTag(),
		}
		if cfg != nil && cfg.DevelopmentVersion != "" {
			steps = append(steps, NewSetDevVersion())
		}
		return steps, nil

	case model.PresetSetTagVersion:
		return []interfaces.ReleaseStep{NewSetTagVersion()}, nil

	case model.PresetSetDevVersion:
		return []interfaces.ReleaseStep{NewSetDevVersion()}, nil

	default:
		return nil, goerr.New("unknown release preset",
			goerr.V("preset", preset),
			goerr.T(types.ErrTagConfiguration),
		)
	}
}

// Release builds the pipeline for preset and runs it
func (uc *releaseUseCase) Release(ctx context.Context, preset model.Preset, cfg *model.ReleaseConfig) (*model.PipelineResult, error) {
	logger := ctxlog.From(ctx)

	if cfg == nil {
		return nil, goerr.New("release config is not set", goerr.T(types.ErrTagConfiguration))
	}

	steps, err := Steps(preset, cfg)
	if err != nil {
		return nil, err
	}

	opts := make([]PipelineOption, 0, len(uc.notifiers))
	for _, n := range uc.notifiers {
		opts = append(opts, WithNotifier(n))
	}

	logger.Info("Processing release",
		"preset", preset,
		"url", cfg.RepositoryURL,
		"project", cfg.ProjectName,
		"simulate", cfg.SimulateRun,
		"revision", cfg.Revision.String(),
	)

	return NewPipeline(string(preset), uc.gateway, steps, opts...).Run(ctx, cfg)
}
