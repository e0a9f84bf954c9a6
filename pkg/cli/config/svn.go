package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
	"github.com/m-mizutani/svnrelease/pkg/infra/svn"
	"github.com/urfave/cli/v3"
)

// Svn holds svn client configuration
type Svn struct {
	Binary                  string
	TrustServerCertFailures string
}

// Flags returns CLI flags for svn client configuration
func (c *Svn) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "svn-bin",
			Usage:       "svn executable",
			Value:       svn.DefaultBinary,
			Destination: &c.Binary,
			Sources:     cli.EnvVars("SVNRELEASE_SVN_BIN"),
		},
		&cli.StringFlag{
			Name:        "svn-trust-server-cert-failures",
			Usage:       "Comma separated certificate failures to accept (e.g. unknown-ca,cn-mismatch)",
			Destination: &c.TrustServerCertFailures,
			Sources:     cli.EnvVars("SVNRELEASE_SVN_TRUST_SERVER_CERT_FAILURES"),
		},
	}
}

// NewClient creates an svn client authenticated with the credentials of cfg
func (c *Svn) NewClient(cfg *model.ReleaseConfig) (*svn.Client, error) {
	if !svn.CommandIsInstalled(c.Binary) {
		return nil, goerr.New("svn command is not installed or not in $PATH",
			goerr.V("bin", c.Binary),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	return svn.NewClient(
		svn.WithBinary(c.Binary),
		svn.WithCredentials(cfg.Username, cfg.Password),
		svn.WithTrustServerCertFailures(c.TrustServerCertFailures),
		svn.WithWorkDir(cfg.ProjectDir),
	), nil
}
