package model

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

// Revision selects a repository revision: either HEAD or a fixed number
type Revision struct {
	number int64
	fixed  bool
}

// RevisionHead is the latest committed revision
var RevisionHead = Revision{}

// RevisionNumber returns a Revision pinned to n
func RevisionNumber(n int64) Revision {
	return Revision{number: n, fixed: true}
}

// ParseRevision parses "HEAD" (case-insensitive) or a non-negative revision
// number. An empty string selects HEAD.
func ParseRevision(s string) (Revision, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "HEAD") {
		return RevisionHead, nil
	}

	n, err := strconv.ParseInt(strings.TrimPrefix(s, "r"), 10, 64)
	if err != nil || n < 0 {
		return Revision{}, goerr.New("invalid revision selector",
			goerr.V("revision", s),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	return RevisionNumber(n), nil
}

// IsHead reports whether r selects the latest revision
func (r Revision) IsHead() bool {
	return !r.fixed
}

// Number returns the pinned revision number and false for HEAD
func (r Revision) Number() (int64, bool) {
	return r.number, r.fixed
}

// String returns the form accepted by `svn -r`
func (r Revision) String() string {
	if !r.fixed {
		return "HEAD"
	}
	return strconv.FormatInt(r.number, 10)
}
