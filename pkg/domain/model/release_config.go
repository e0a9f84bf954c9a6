package model

import (
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

// Property keys of the flat release configuration
const (
	PropUsername           = "username"
	PropPassword           = "password"
	PropURL                = "url"
	PropDevelopmentVersion = "developmentVersion"
	PropTagVersion         = "tagVersion"
	PropFolderName         = "folderName"
	PropSimulateRun        = "simulateRun"
	PropRevision           = "revision"
)

// PropertyKeys lists every key understood by NewReleaseConfig
var PropertyKeys = []string{
	PropUsername,
	PropPassword,
	PropURL,
	PropDevelopmentVersion,
	PropTagVersion,
	PropFolderName,
	PropSimulateRun,
	PropRevision,
}

// Properties is the flat key/value input of a release run. Missing or empty
// keys are unset.
type Properties map[string]string

// Get returns the trimmed value of key, empty when unset
func (p Properties) Get(key string) string {
	return strings.TrimSpace(p[key])
}

// ProjectFacts are supplied by the host rather than by properties
type ProjectFacts struct {
	Name            string // Project name, used to locate the project root in the URL
	Dir             string // Project root directory holding the properties file
	FallbackVersion string // Project version used when tagVersion is unset
}

// ReleaseConfig is the resolved, read-only configuration of one release run
type ReleaseConfig struct {
	Username           string
	Password           string `masq:"secret"`
	RepositoryURL      string
	ProjectName        string
	ProjectDir         string
	DevelopmentVersion string
	TagVersion         string
	FallbackVersion    string
	FolderName         string
	SimulateRun        bool
	Revision           Revision
}

// NewReleaseConfig resolves props and facts into a ReleaseConfig
func NewReleaseConfig(props Properties, facts ProjectFacts) (*ReleaseConfig, error) {
	cfg := &ReleaseConfig{
		Username:           props.Get(PropUsername),
		Password:           props[PropPassword],
		RepositoryURL:      props.Get(PropURL),
		ProjectName:        facts.Name,
		ProjectDir:         facts.Dir,
		DevelopmentVersion: props.Get(PropDevelopmentVersion),
		TagVersion:         props.Get(PropTagVersion),
		FallbackVersion:    facts.FallbackVersion,
		FolderName:         props.Get(PropFolderName),
		Revision:           RevisionHead,
	}

	if cfg.RepositoryURL == "" {
		return nil, goerr.New("property is not set",
			goerr.V("key", PropURL),
			goerr.T(types.ErrTagConfiguration),
		)
	}

	if v := props.Get(PropSimulateRun); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid boolean property",
				goerr.V("key", PropSimulateRun),
				goerr.V("value", v),
				goerr.T(types.ErrTagConfiguration),
			)
		}
		cfg.SimulateRun = b
	}

	rev, err := ParseRevision(props.Get(PropRevision))
	if err != nil {
		return nil, err
	}
	cfg.Revision = rev

	return cfg, nil
}

// URL parses RepositoryURL
func (c *ReleaseConfig) URL() (*RepositoryURL, error) {
	return ParseRepositoryURL(c.RepositoryURL)
}

// DefaultFolderName returns FolderName if set, otherwise <project>-<version>.
// An empty result means neither is available.
func (c *ReleaseConfig) DefaultFolderName(version string) string {
	if c.FolderName != "" {
		return c.FolderName
	}
	if version == "" {
		return ""
	}
	return c.ProjectName + "-" + version
}
