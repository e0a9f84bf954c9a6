package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagConfiguration marks bad, missing or unparseable input such as an
	// invalid URL shape or revision selector.
	ErrTagConfiguration = goerr.NewTag("configuration")

	// ErrTagVerification marks an expected repository structure that is absent.
	ErrTagVerification = goerr.NewTag("verification")

	// ErrTagGateway marks any failure surfaced by the SVN gateway.
	ErrTagGateway = goerr.NewTag("gateway")

	// ErrTagIO marks a local file read or write failure.
	ErrTagIO = goerr.NewTag("io")
)
