package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

// CopyKind parameterizes CopyStep
type CopyKind struct {
	Name    string
	Folder  string
	Message string

	// SelectVersion picks the version used for the default folder name
	SelectVersion func(cfg *model.ReleaseConfig) string

	// Root locates the directory that holds Folder
	Root func(u *model.RepositoryURL, cfg *model.ReleaseConfig) (*model.RepositoryURL, error)
}

// BranchCopy creates branches/<folder> below the project root found by
// walking up to the project name.
var BranchCopy = CopyKind{
	Name:    "create-branch",
	Folder:  types.FolderBranches,
	Message: types.MessageNewBranch,
	SelectVersion: func(cfg *model.ReleaseConfig) string {
		return cfg.DevelopmentVersion
	},
	Root: func(u *model.RepositoryURL, cfg *model.ReleaseConfig) (*model.RepositoryURL, error) {
		return u.ProjectRoot(cfg.ProjectName)
	},
}

// TagCopy creates tags/<folder> next to the working line.
var TagCopy = CopyKind{
	Name:    "create-tag",
	Folder:  types.FolderTags,
	Message: types.MessageNewTag,
	SelectVersion: func(cfg *model.ReleaseConfig) string {
		return cfg.TagVersion
	},
	Root: func(u *model.RepositoryURL, _ *model.ReleaseConfig) (*model.RepositoryURL, error) {
		return u.LineRoot()
	},
}

// CopyStep creates a branch or tag by server-side copy of the working line
// at HEAD.
type CopyStep struct {
	kind CopyKind
}

// NewCopy creates a CopyStep of the given kind
func NewCopy(kind CopyKind) *CopyStep {
	return &CopyStep{kind: kind}
}

// NewCreateBranch creates a CopyStep for branches
func NewCreateBranch() *CopyStep {
	return NewCopy(BranchCopy)
}

// NewCreateTag creates a CopyStep for tags
func NewCreateTag() *CopyStep {
	return NewCopy(TagCopy)
}

// Name returns the step name
func (s *CopyStep) Name() string {
	return s.kind.Name
}

// Destination returns the URL the working line is copied to
func (s *CopyStep) Destination(cfg *model.ReleaseConfig) (*model.RepositoryURL, error) {
	u, err := cfg.URL()
	if err != nil {
		return nil, err
	}

	root, err := s.kind.Root(u, cfg)
	if err != nil {
		return nil, err
	}

	folderName := cfg.DefaultFolderName(s.kind.SelectVersion(cfg))
	if folderName == "" {
		return nil, goerr.New("neither folder name nor version is set",
			goerr.V("step", s.kind.Name),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	return root.Join(s.kind.Folder, folderName), nil
}

// Run copies RepositoryURL@HEAD to Destination
func (s *CopyStep) Run(ctx context.Context, cfg *model.ReleaseConfig, gateway interfaces.SvnGateway) error {
	logger := ctxlog.From(ctx)

	dst, err := s.Destination(cfg)
	if err != nil {
		return err
	}

	if cfg.SimulateRun {
		logger.Info("Simulate copy",
			"from", cfg.RepositoryURL,
			"to", dst.String(),
		)
		return nil
	}

	if err := gateway.Copy(ctx, cfg.RepositoryURL, model.RevisionHead, dst.String(), s.kind.Message); err != nil {
		return goerr.Wrap(err, "failed to copy svn folder",
			goerr.V("from", cfg.RepositoryURL),
			goerr.V("to", dst.String()),
			goerr.T(types.ErrTagGateway),
		)
	}

	logger.Info("Copied svn folder",
		"from", cfg.RepositoryURL,
		"to", dst.String(),
	)

	return nil
}
