package model

import (
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

// RepositoryURL is a parsed SVN repository URL split into path segments.
// Segments are kept in their escaped form so String() round-trips the input.
type RepositoryURL struct {
	base     string // scheme://[user@]host
	segments []string
}

// ParseRepositoryURL parses raw as an absolute SVN URL (http, https, svn,
// svn+ssh, file, ...).
func ParseRepositoryURL(raw string) (*RepositoryURL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, goerr.New("repository url is not set", goerr.T(types.ErrTagConfiguration))
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid repository url",
			goerr.V("url", raw),
			goerr.T(types.ErrTagConfiguration),
		)
	}
	if u.Scheme == "" || u.Opaque != "" {
		return nil, goerr.New("repository url must be absolute",
			goerr.V("url", raw),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	base := u.Scheme + "://"
	if u.User != nil {
		base += u.User.String() + "@"
	}
	base += u.Host

	var segments []string
	for _, s := range strings.Split(u.EscapedPath(), "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	return &RepositoryURL{base: base, segments: segments}, nil
}

// String returns the URL without a trailing slash
func (u *RepositoryURL) String() string {
	return u.base + "/" + strings.Join(u.segments, "/")
}

// Len returns the number of path segments
func (u *RepositoryURL) Len() int {
	return len(u.segments)
}

// Segment returns the unescaped path segment at i. Negative indexes count
// from the end.
func (u *RepositoryURL) Segment(i int) string {
	if i < 0 {
		i += len(u.segments)
	}
	if i < 0 || i >= len(u.segments) {
		return ""
	}
	s, err := url.PathUnescape(u.segments[i])
	if err != nil {
		return u.segments[i]
	}
	return s
}

// Join returns a new URL with names appended as path segments
func (u *RepositoryURL) Join(names ...string) *RepositoryURL {
	segments := make([]string, 0, len(u.segments)+len(names))
	segments = append(segments, u.segments...)
	for _, name := range names {
		segments = append(segments, url.PathEscape(name))
	}
	return &RepositoryURL{base: u.base, segments: segments}
}

func (u *RepositoryURL) truncate(n int) *RepositoryURL {
	segments := make([]string, n)
	copy(segments, u.segments[:n])
	return &RepositoryURL{base: u.base, segments: segments}
}

// IsTrunk reports whether the URL ends with /trunk
func (u *RepositoryURL) IsTrunk() bool {
	return u.Len() > 0 && u.Segment(-1) == types.FolderTrunk
}

// IsBranch reports whether the URL has the form .../branches/<name>
func (u *RepositoryURL) IsBranch() bool {
	return u.Len() > 1 && u.Segment(-2) == types.FolderBranches && u.Segment(-1) != ""
}

// ProjectRoot walks the path upward until the last segment equals
// projectName. The walk is bounded by the number of segments.
func (u *RepositoryURL) ProjectRoot(projectName string) (*RepositoryURL, error) {
	if projectName == "" {
		return nil, goerr.New("project name is not set", goerr.T(types.ErrTagConfiguration))
	}

	for n := u.Len(); n > 0; n-- {
		if u.Segment(n-1) == projectName {
			return u.truncate(n), nil
		}
	}

	return nil, goerr.New("project name not found in repository url",
		goerr.V("url", u.String()),
		goerr.V("project", projectName),
		goerr.T(types.ErrTagConfiguration),
	)
}

// LineRoot removes the working line from the URL: the trailing segment is
// dropped once, and when the remaining parent is the branches container it
// is dropped as well. Both .../p/trunk and .../p/branches/x yield .../p.
func (u *RepositoryURL) LineRoot() (*RepositoryURL, error) {
	if u.Len() == 0 {
		return nil, goerr.New("repository url has no path to remove",
			goerr.V("url", u.String()),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	root := u.truncate(u.Len() - 1)
	if root.Len() > 0 && root.Segment(-1) == types.FolderBranches {
		root = root.truncate(root.Len() - 1)
	}
	return root, nil
}
