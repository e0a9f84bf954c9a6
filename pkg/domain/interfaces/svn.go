package interfaces

import (
	"context"

	"github.com/m-mizutani/svnrelease/pkg/domain/model"
)

// SvnGateway defines the repository operations used by release steps
type SvnGateway interface {
	// Copy performs a server-side copy of srcURL at srcRev to dstURL
	Copy(ctx context.Context, srcURL string, srcRev model.Revision, dstURL, message string) error

	// ListDirectory lists the entries of url at rev
	ListDirectory(ctx context.Context, url string, rev model.Revision) ([]model.Dirent, error)

	// CommitPaths commits the given working copy paths
	CommitPaths(ctx context.Context, paths []string, message string) error
}
