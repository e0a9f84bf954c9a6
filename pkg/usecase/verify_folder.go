package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

// VerifyFolderStep checks that a sibling folder of the working line exists
// below the project root. It only reads from the repository.
type VerifyFolderStep struct {
	folder string
}

// NewVerifyTagFolder creates a step verifying the tags folder
func NewVerifyTagFolder() *VerifyFolderStep {
	return &VerifyFolderStep{folder: types.FolderTags}
}

// NewVerifyBranchFolder creates a step verifying the branches folder
func NewVerifyBranchFolder() *VerifyFolderStep {
	return &VerifyFolderStep{folder: types.FolderBranches}
}

// Name returns the step name
func (s *VerifyFolderStep) Name() string {
	return "verify-" + s.folder + "-folder"
}

// Target returns the URL of the folder to verify
func (s *VerifyFolderStep) Target(cfg *model.ReleaseConfig) (*model.RepositoryURL, error) {
	u, err := cfg.URL()
	if err != nil {
		return nil, err
	}

	root, err := u.ProjectRoot(cfg.ProjectName)
	if err != nil {
		return nil, err
	}

	return root.Join(s.folder), nil
}

// Run lists the folder at HEAD
func (s *VerifyFolderStep) Run(ctx context.Context, cfg *model.ReleaseConfig, gateway interfaces.SvnGateway) error {
	logger := ctxlog.From(ctx)

	target, err := s.Target(cfg)
	if err != nil {
		return err
	}

	entries, err := gateway.ListDirectory(ctx, target.String(), model.RevisionHead)
	if err != nil {
		return goerr.Wrap(err, "repository folder does not exist or is unreachable",
			goerr.V("folder", s.folder),
			goerr.V("url", target.String()),
			goerr.T(types.ErrTagVerification),
		)
	}

	logger.Info("Verified repository folder",
		"url", target.String(),
		"entries", len(entries),
	)

	return nil
}
