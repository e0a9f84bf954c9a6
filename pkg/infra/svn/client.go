// Package svn implements the SvnGateway by running the svn command line client.
package svn

import (
	"context"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
)

// DefaultBinary is the svn executable looked up in $PATH
const DefaultBinary = "svn"

// config holds internal client configuration
type config struct {
	bin                     string
	username                string
	password                string
	trustServerCertFailures string
	workDir                 string
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithBinary sets the svn executable
func WithBinary(bin string) Option {
	return func(c *config) {
		c.bin = bin
	}
}

// WithCredentials sets the username and password. An empty username means
// anonymous access.
func WithCredentials(username, password string) Option {
	return func(c *config) {
		c.username = username
		c.password = password
	}
}

// WithTrustServerCertFailures passes a comma separated failure list to
// --trust-server-cert-failures
func WithTrustServerCertFailures(failures string) Option {
	return func(c *config) {
		c.trustServerCertFailures = failures
	}
}

// WithWorkDir sets the directory commands run in
func WithWorkDir(dir string) Option {
	return func(c *config) {
		c.workDir = dir
	}
}

// Client runs svn commands
type Client struct {
	cfg config
}

var _ interfaces.SvnGateway = (*Client)(nil)

// CommandIsInstalled reports whether bin is found in $PATH
func CommandIsInstalled(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

// NewClient creates a new svn client
func NewClient(opts ...Option) *Client {
	cfg := config{
		bin: DefaultBinary,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{cfg: cfg}
}

// globalArgs returns the options shared by all subcommands. The password
// is passed on stdin so it never shows up in the process list.
func (c *Client) globalArgs() []string {
	args := []string{"--non-interactive"}

	if c.cfg.username != "" {
		args = append(args, "--no-auth-cache", "--username", c.cfg.username)
		if c.cfg.password != "" {
			args = append(args, "--password-from-stdin")
		}
	}
	if c.cfg.trustServerCertFailures != "" {
		args = append(args, "--trust-server-cert-failures", c.cfg.trustServerCertFailures)
	}

	return args
}

func (c *Client) run(ctx context.Context, sub string, args ...string) (*result, error) {
	argv := append([]string{sub}, c.globalArgs()...)
	argv = append(argv, args...)

	cmd := command(ctx, c.cfg.bin, argv...).directory(c.cfg.workDir)
	if c.cfg.username != "" && c.cfg.password != "" {
		cmd.stdin(strings.NewReader(c.cfg.password))
	}

	ctxlog.From(ctx).Debug("Running svn", "args", argv)

	res, err := cmd.run()
	if err != nil {
		return nil, goerr.Wrap(err, "svn command failed", goerr.V("subcommand", sub))
	}
	return res, nil
}

// Copy performs a server-side copy
func (c *Client) Copy(ctx context.Context, srcURL string, srcRev model.Revision, dstURL, message string) error {
	_, err := c.run(ctx, "copy",
		"-r", srcRev.String(),
		"-m", message,
		"--", srcURL, dstURL,
	)
	return err
}

// ListDirectory lists the entries of url at rev
func (c *Client) ListDirectory(ctx context.Context, url string, rev model.Revision) ([]model.Dirent, error) {
	res, err := c.run(ctx, "list",
		"--xml",
		"-r", rev.String(),
		"--", url,
	)
	if err != nil {
		return nil, err
	}

	return parseList(res.Stdout)
}

// CommitPaths commits the given working copy paths
func (c *Client) CommitPaths(ctx context.Context, paths []string, message string) error {
	if len(paths) == 0 {
		return goerr.New("no paths to commit")
	}

	args := append([]string{"-m", message, "--"}, paths...)
	_, err := c.run(ctx, "commit", args...)
	return err
}
