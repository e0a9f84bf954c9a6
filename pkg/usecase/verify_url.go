package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

// VerifyURLStep checks that the repository URL points at trunk or a branch.
// It never calls the gateway.
type VerifyURLStep struct{}

// NewVerifyURL creates a new VerifyURLStep
func NewVerifyURL() *VerifyURLStep {
	return &VerifyURLStep{}
}

// Name returns the step name
func (s *VerifyURLStep) Name() string {
	return "verify-url"
}

// Run verifies the shape of cfg.RepositoryURL
func (s *VerifyURLStep) Run(ctx context.Context, cfg *model.ReleaseConfig, _ interfaces.SvnGateway) error {
	if cfg == nil {
		return goerr.New("release config is not set", goerr.T(types.ErrTagConfiguration))
	}

	u, err := cfg.URL()
	if err != nil {
		return err
	}

	if !u.IsTrunk() && !u.IsBranch() {
		return goerr.New("svn url must point to a trunk or branch location",
			goerr.V("url", cfg.RepositoryURL),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	ctxlog.From(ctx).Debug("Verified repository url",
		"url", u.String(),
		"trunk", u.IsTrunk(),
	)

	return nil
}
