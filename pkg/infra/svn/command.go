package svn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// cmd is a single svn invocation
type cmd struct {
	*exec.Cmd
}

// result describes a finished invocation
type result struct {
	Command  string
	Dir      string
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// ExitCodeError is returned when svn exits with a code other than 0
type ExitCodeError struct {
	Command  string
	Dir      string
	ExitCode int
	Output   string
}

// Error returns the error description
func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("svn: running '%s' in directory '%s' exited with code %d, output: '%s'",
		e.Command, e.Dir, e.ExitCode, e.Output)
}

func command(ctx context.Context, bin string, args ...string) *cmd {
	return &cmd{Cmd: exec.CommandContext(ctx, bin, args...)}
}

func (c *cmd) directory(dir string) *cmd {
	c.Cmd.Dir = dir
	return c
}

func (c *cmd) stdin(r io.Reader) *cmd {
	c.Cmd.Stdin = r
	return c
}

// run executes the command and fails with *ExitCodeError on a non-zero
// exit code.
func (c *cmd) run() (*result, error) {
	var stdout, stderr bytes.Buffer
	c.Cmd.Stdout = &stdout
	c.Cmd.Stderr = &stderr

	res := &result{
		Command: cmdString(c.Cmd),
		Dir:     c.Cmd.Dir,
	}
	if res.Dir == "" {
		res.Dir = "."
	}

	err := c.Cmd.Run()
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		res.ExitCode = ee.ExitCode()
		return nil, &ExitCodeError{
			Command:  res.Command,
			Dir:      res.Dir,
			ExitCode: res.ExitCode,
			Output:   strings.TrimSpace(string(res.Stdout) + "\n" + string(res.Stderr)),
		}
	}
	if err != nil {
		return nil, err
	}

	return res, nil
}

func cmdString(cmd *exec.Cmd) string {
	// cmd.Args[0] is the command name, cmd.Path the resolved path
	if len(cmd.Args) > 1 {
		return fmt.Sprintf("%s %s", cmd.Path, strings.Join(cmd.Args[1:], " "))
	}
	return cmd.Path
}
