package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/m-mizutani/svnrelease/pkg/cli/config"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadProperties(t *testing.T) {
	path := writeFile(t, t.TempDir(), "release.toml", `
url = "https://host/repo/myproj/trunk"
username = "alice"
tagVersion = "1.0"
simulateRun = true
revision = 42
`)

	properties, err := config.LoadProperties(path)
	gt.NoError(t, err)

	gt.String(t, properties.Get(model.PropURL)).Equal("https://host/repo/myproj/trunk")
	gt.String(t, properties.Get(model.PropUsername)).Equal("alice")
	gt.String(t, properties.Get(model.PropTagVersion)).Equal("1.0")
	gt.String(t, properties.Get(model.PropSimulateRun)).Equal("true")
	gt.String(t, properties.Get(model.PropRevision)).Equal("42")
}

func TestLoadProperties_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: `branch = "x"`},
		{name: "float value", content: `tagVersion = 1.0`},
		{name: "table value", content: "[url]\nhost = \"x\"\n"},
		{name: "broken toml", content: `url = "unterminated`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "release.toml", tt.content)

			_, err := config.LoadProperties(path)
			gt.Error(t, err)
			gt.Value(t, goerr.HasTag(err, types.ErrTagConfiguration)).Equal(true)
		})
	}
}

func TestLoadProperties_Missing(t *testing.T) {
	_, err := config.LoadProperties(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagConfiguration)).Equal(true)
}

func TestRelease_Facts(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "myproj")
	gt.NoError(t, os.Mkdir(dir, 0755))
	writeFile(t, dir, types.PropertiesFileName, "version=0.9-SNAPSHOT\n")

	facts, err := (&config.Release{ProjectDir: dir}).Facts()
	gt.NoError(t, err)
	gt.String(t, facts.Name).Equal("myproj")
	gt.String(t, facts.Dir).Equal(dir)
	gt.String(t, facts.FallbackVersion).Equal("0.9-SNAPSHOT")

	facts, err = (&config.Release{ProjectDir: dir, ProjectName: "other"}).Facts()
	gt.NoError(t, err)
	gt.String(t, facts.Name).Equal("other")
}

func TestRelease_Facts_NoPropertiesFile(t *testing.T) {
	facts, err := (&config.Release{ProjectDir: t.TempDir()}).Facts()
	gt.NoError(t, err)
	gt.String(t, facts.FallbackVersion).Equal("")
}

// runRelease parses args with the release flags and returns the resolved
// configuration
func runRelease(t *testing.T, args ...string) (*model.ReleaseConfig, error) {
	t.Helper()

	var rel config.Release
	var cfg *model.ReleaseConfig
	cmd := &cli.Command{
		Name:  "test",
		Flags: rel.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			var err error
			cfg, err = rel.Configure(c)
			return err
		},
	}

	err := cmd.Run(context.Background(), append([]string{"test"}, args...))
	return cfg, err
}

func TestRelease_Configure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, types.PropertiesFileName, "version=0.9\n")
	path := writeFile(t, dir, "release.toml", `
url = "https://host/repo/myproj/trunk"
tagVersion = "1.0"
developmentVersion = "1.1-SNAPSHOT"
simulateRun = true
`)

	cfg, err := runRelease(t,
		"--config", path,
		"--project-dir", dir,
		"--project-name", "myproj",
		"--tag-version", "2.0",
		"--simulate-run=false",
		"--password", "s3cret",
	)
	gt.NoError(t, err)

	gt.String(t, cfg.RepositoryURL).Equal("https://host/repo/myproj/trunk")
	gt.String(t, cfg.TagVersion).Equal("2.0")
	gt.String(t, cfg.DevelopmentVersion).Equal("1.1-SNAPSHOT")
	gt.Value(t, cfg.SimulateRun).Equal(false)
	gt.String(t, cfg.Password).Equal("s3cret")
	gt.String(t, cfg.ProjectName).Equal("myproj")
	gt.String(t, cfg.FallbackVersion).Equal("0.9")
	gt.Value(t, cfg.Revision.IsHead()).Equal(true)
}

func TestRelease_Configure_FileOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "release.toml", `
url = "https://host/repo/myproj/trunk"
simulateRun = true
revision = "r12"
`)

	cfg, err := runRelease(t, "--config", path, "--project-dir", dir)
	gt.NoError(t, err)
	gt.Value(t, cfg.SimulateRun).Equal(true)
	n, fixed := cfg.Revision.Number()
	gt.Value(t, fixed).Equal(true)
	gt.Number(t, n).Equal(12)
}

func TestRelease_Configure_MissingURL(t *testing.T) {
	_, err := runRelease(t, "--project-dir", t.TempDir())
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagConfiguration)).Equal(true)
}
