package interfaces

import (
	"context"

	"github.com/m-mizutani/svnrelease/pkg/domain/model"
)

// ReleaseUseCase runs release pipelines
type ReleaseUseCase interface {
	// Release runs the steps of preset against cfg until the first failure
	Release(ctx context.Context, preset model.Preset, cfg *model.ReleaseConfig) (*model.PipelineResult, error)
}
