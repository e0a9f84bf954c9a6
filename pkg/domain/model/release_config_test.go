package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
)

func TestNewReleaseConfig(t *testing.T) {
	facts := model.ProjectFacts{
		Name:            "myproj",
		Dir:             "/work/myproj",
		FallbackVersion: "1.0-SNAPSHOT",
	}

	t.Run("resolves all keys", func(t *testing.T) {
		cfg, err := model.NewReleaseConfig(model.Properties{
			model.PropUsername:           "alice",
			model.PropPassword:           "s3cret",
			model.PropURL:                "https://host/repo/myproj/trunk",
			model.PropDevelopmentVersion: "1.1-SNAPSHOT",
			model.PropTagVersion:         "1.0",
			model.PropFolderName:         "release-1.0",
			model.PropSimulateRun:        "true",
			model.PropRevision:           "42",
		}, facts)
		gt.NoError(t, err)

		gt.String(t, cfg.Username).Equal("alice")
		gt.String(t, cfg.Password).Equal("s3cret")
		gt.String(t, cfg.RepositoryURL).Equal("https://host/repo/myproj/trunk")
		gt.String(t, cfg.ProjectName).Equal("myproj")
		gt.String(t, cfg.ProjectDir).Equal("/work/myproj")
		gt.String(t, cfg.DevelopmentVersion).Equal("1.1-SNAPSHOT")
		gt.String(t, cfg.TagVersion).Equal("1.0")
		gt.String(t, cfg.FallbackVersion).Equal("1.0-SNAPSHOT")
		gt.String(t, cfg.FolderName).Equal("release-1.0")
		gt.Value(t, cfg.SimulateRun).Equal(true)
		gt.String(t, cfg.Revision.String()).Equal("42")
	})

	t.Run("missing keys are unset", func(t *testing.T) {
		cfg, err := model.NewReleaseConfig(model.Properties{
			model.PropURL: "https://host/repo/myproj/trunk",
		}, facts)
		gt.NoError(t, err)

		gt.String(t, cfg.Username).Equal("")
		gt.String(t, cfg.TagVersion).Equal("")
		gt.Value(t, cfg.SimulateRun).Equal(false)
		gt.Value(t, cfg.Revision.IsHead()).Equal(true)
	})

	errorCases := []struct {
		name  string
		props model.Properties
	}{
		{name: "url unset", props: model.Properties{}},
		{name: "url blank", props: model.Properties{model.PropURL: "  "}},
		{name: "bad simulateRun", props: model.Properties{model.PropURL: "https://host/r/trunk", model.PropSimulateRun: "maybe"}},
		{name: "bad revision", props: model.Properties{model.PropURL: "https://host/r/trunk", model.PropRevision: "yesterday"}},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewReleaseConfig(tt.props, facts)
			gt.Error(t, err)
			gt.Value(t, goerr.HasTag(err, types.ErrTagConfiguration)).Equal(true)
		})
	}
}

func TestReleaseConfig_DefaultFolderName(t *testing.T) {
	cfg := &model.ReleaseConfig{ProjectName: "myproj"}
	gt.String(t, cfg.DefaultFolderName("2.0")).Equal("myproj-2.0")
	gt.String(t, cfg.DefaultFolderName("")).Equal("")

	cfg.FolderName = "custom"
	gt.String(t, cfg.DefaultFolderName("2.0")).Equal("custom")
	gt.String(t, cfg.DefaultFolderName("")).Equal("custom")
}
