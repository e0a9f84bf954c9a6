package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
	"github.com/m-mizutani/svnrelease/pkg/utils/props"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Release holds the release properties and project facts. Values given by
// flag or environment variable override the TOML config file.
type Release struct {
	ConfigFile         string
	URL                string
	Username           string
	Password           string
	DevelopmentVersion string
	TagVersion         string
	FolderName         string
	SimulateRun        bool
	Revision           string
	ProjectDir         string
	ProjectName        string
}

type propertyFlag struct {
	flag  string
	key   string
	value *string
}

// propertyFlags maps string flags to property keys
func (c *Release) propertyFlags() []propertyFlag {
	return []propertyFlag{
		{"url", model.PropURL, &c.URL},
		{"username", model.PropUsername, &c.Username},
		{"password", model.PropPassword, &c.Password},
		{"development-version", model.PropDevelopmentVersion, &c.DevelopmentVersion},
		{"tag-version", model.PropTagVersion, &c.TagVersion},
		{"folder-name", model.PropFolderName, &c.FolderName},
		{"revision", model.PropRevision, &c.Revision},
	}
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file holding release properties",
			Destination: &c.ConfigFile,
			Sources:     cli.EnvVars("SVNRELEASE_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Repository URL of the working line (trunk or branch)",
			Destination: &c.URL,
			Sources:     cli.EnvVars("SVNRELEASE_URL"),
		},
		&cli.StringFlag{
			Name:        "username",
			Usage:       "SVN username, anonymous access when empty",
			Destination: &c.Username,
			Sources:     cli.EnvVars("SVNRELEASE_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "SVN password",
			Destination: &c.Password,
			Sources:     cli.EnvVars("SVNRELEASE_PASSWORD"),
		},
		&cli.StringFlag{
			Name:        "development-version",
			Usage:       "Version to continue development with",
			Destination: &c.DevelopmentVersion,
			Sources:     cli.EnvVars("SVNRELEASE_DEVELOPMENT_VERSION"),
		},
		&cli.StringFlag{
			Name:        "tag-version",
			Usage:       "Version to release, defaults to the current project version",
			Destination: &c.TagVersion,
			Sources:     cli.EnvVars("SVNRELEASE_TAG_VERSION"),
		},
		&cli.StringFlag{
			Name:        "folder-name",
			Usage:       "Branch or tag directory name, defaults to <project>-<version>",
			Destination: &c.FolderName,
			Sources:     cli.EnvVars("SVNRELEASE_FOLDER_NAME"),
		},
		&cli.BoolFlag{
			Name:        "simulate-run",
			Usage:       "Do not copy or commit, only log what would be done",
			Destination: &c.SimulateRun,
			Sources:     cli.EnvVars("SVNRELEASE_SIMULATE_RUN"),
		},
		&cli.StringFlag{
			Name:        "revision",
			Usage:       "Revision selector, HEAD or a number",
			Destination: &c.Revision,
			Sources:     cli.EnvVars("SVNRELEASE_REVISION"),
		},
		&cli.StringFlag{
			Name:        "project-dir",
			Usage:       "Project root directory holding " + types.PropertiesFileName,
			Value:       ".",
			Destination: &c.ProjectDir,
			Sources:     cli.EnvVars("SVNRELEASE_PROJECT_DIR"),
		},
		&cli.StringFlag{
			Name:        "project-name",
			Usage:       "Project name as it appears in the repository URL, defaults to the project directory name",
			Destination: &c.ProjectName,
			Sources:     cli.EnvVars("SVNRELEASE_PROJECT_NAME"),
		},
	}
}

// Configure resolves the release configuration of cmd
func (c *Release) Configure(cmd *cli.Command) (*model.ReleaseConfig, error) {
	properties, err := c.Properties(cmd)
	if err != nil {
		return nil, err
	}

	facts, err := c.Facts()
	if err != nil {
		return nil, err
	}

	return model.NewReleaseConfig(properties, facts)
}

// Properties merges the config file with the flags set on cmd
func (c *Release) Properties(cmd *cli.Command) (model.Properties, error) {
	properties := model.Properties{}

	if c.ConfigFile != "" {
		loaded, err := LoadProperties(c.ConfigFile)
		if err != nil {
			return nil, err
		}
		properties = loaded
	}

	for _, pf := range c.propertyFlags() {
		if cmd.IsSet(pf.flag) {
			properties[pf.key] = *pf.value
		}
	}
	if cmd.IsSet("simulate-run") {
		properties[model.PropSimulateRun] = strconv.FormatBool(c.SimulateRun)
	}

	return properties, nil
}

// Facts resolves the project directory, name and current version
func (c *Release) Facts() (model.ProjectFacts, error) {
	dir, err := filepath.Abs(c.ProjectDir)
	if err != nil {
		return model.ProjectFacts{}, goerr.Wrap(err, "invalid project directory",
			goerr.V("dir", c.ProjectDir),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	name := c.ProjectName
	if name == "" {
		name = filepath.Base(dir)
	}

	version, _, err := props.ReadFile(filepath.Join(dir, types.PropertiesFileName), types.VersionKey)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return model.ProjectFacts{}, err
	}

	return model.ProjectFacts{
		Name:            name,
		Dir:             dir,
		FallbackVersion: version,
	}, nil
}

// LoadProperties reads release properties from a TOML file. Keys must be
// known property keys; values must be strings, booleans or integers.
func LoadProperties(path string) (model.Properties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file",
			goerr.V("path", path),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file",
			goerr.V("path", path),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	properties := model.Properties{}
	for key, value := range raw {
		if !slices.Contains(model.PropertyKeys, key) {
			return nil, goerr.New("unknown key in config file",
				goerr.V("path", path),
				goerr.V("key", key),
				goerr.T(types.ErrTagConfiguration),
			)
		}

		switch v := value.(type) {
		case string:
			properties[key] = v
		case bool:
			properties[key] = strconv.FormatBool(v)
		case int64:
			properties[key] = strconv.FormatInt(v, 10)
		default:
			return nil, goerr.New("config value must be a string, boolean or integer",
				goerr.V("path", path),
				goerr.V("key", key),
				goerr.T(types.ErrTagConfiguration),
			)
		}
	}

	return properties, nil
}
