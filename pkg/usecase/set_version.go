package usecase

import (
	"context"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
	"github.com/m-mizutani/svnrelease/pkg/utils/props"
)

// VersionKind parameterizes SetVersionStep
type VersionKind struct {
	Name          string
	Message       string
	SelectVersion func(cfg *model.ReleaseConfig) string
}

// TagVersion sets the tag version, or the project fallback version when no
// tag version is configured.
var TagVersion = VersionKind{
	Name:    "set-tag-version",
	Message: types.MessageSetTagVersion,
	SelectVersion: func(cfg *model.ReleaseConfig) string {
		if cfg.TagVersion != "" {
			return cfg.TagVersion
		}
		return cfg.FallbackVersion
	},
}

// DevVersion sets the development version
var DevVersion = VersionKind{
	Name:    "set-dev-version",
	Message: types.MessageSetDevVersion,
	SelectVersion: func(cfg *model.ReleaseConfig) string {
		return cfg.DevelopmentVersion
	},
}

// SetVersionStep rewrites the version key of the project properties file
// and commits it.
type SetVersionStep struct {
	kind VersionKind
}

// NewSetVersion creates a SetVersionStep of the given kind
func NewSetVersion(kind VersionKind) *SetVersionStep {
	return &SetVersionStep{kind: kind}
}

// NewSetTagVersion creates a SetVersionStep for the tag version
func NewSetTagVersion() *SetVersionStep {
	return NewSetVersion(TagVersion)
}

// NewSetDevVersion creates a SetVersionStep for the development version
func NewSetDevVersion() *SetVersionStep {
	return NewSetVersion(DevVersion)
}

// Name returns the step name
func (s *SetVersionStep) Name() string {
	return s.kind.Name
}

// Run rewrites and commits the properties file. The step is skipped unless
// the configured revision is HEAD.
func (s *SetVersionStep) Run(ctx context.Context, cfg *model.ReleaseConfig, gateway interfaces.SvnGateway) error {
	logger := ctxlog.From(ctx)

	if !cfg.Revision.IsHead() {
		logger.Info("Revision is not HEAD, skip setting version",
			"revision", cfg.Revision.String(),
		)
		return nil
	}

	version := s.kind.SelectVersion(cfg)
	if version == "" {
		return goerr.New("version to set is not configured",
			goerr.V("step", s.kind.Name),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	path := filepath.Join(cfg.ProjectDir, types.PropertiesFileName)
	if err := props.SetFile(path, types.VersionKey, version); err != nil {
		return err
	}

	if cfg.SimulateRun {
		logger.Info("Simulate set version",
			"version", version,
			"file", path,
		)
		return nil
	}

	if err := gateway.CommitPaths(ctx, []string{path}, s.kind.Message); err != nil {
		return goerr.Wrap(err, "failed to commit properties file",
			goerr.V("file", path),
			goerr.V("version", version),
			goerr.T(types.ErrTagGateway),
		)
	}

	logger.Info("Set project version",
		"version", version,
		"file", path,
	)

	return nil
}
