package cli

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

const (
	exitCodeSuccess       = 0
	exitCodeError         = 1
	exitCodeConfiguration = 2
	exitCodeVerification  = 3
	exitCodeGateway       = 4
	exitCodeIO            = 5
)

// ExitCode maps err to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitCodeSuccess
	case goerr.HasTag(err, types.ErrTagConfiguration):
		return exitCodeConfiguration
	case goerr.HasTag(err, types.ErrTagVerification):
		return exitCodeVerification
	case goerr.HasTag(err, types.ErrTagGateway):
		return exitCodeGateway
	case goerr.HasTag(err, types.ErrTagIO):
		return exitCodeIO
	default:
		return exitCodeError
	}
}
