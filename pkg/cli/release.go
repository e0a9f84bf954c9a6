package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/svnrelease/pkg/cli/config"
	"github.com/m-mizutani/svnrelease/pkg/domain/model"
	"github.com/m-mizutani/svnrelease/pkg/domain/types"
	"github.com/m-mizutani/svnrelease/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdVerify(notifyCfg *config.Notify) *cli.Command {
	return cmdRelease(&cli.Command{
		Name:  "verify",
		Usage: "Verify the repository URL and the tags and branches folders",
	}, notifyCfg, nil, func(*cli.Command) (model.Preset, error) {
		return model.PresetVerify, nil
	})
}

func cmdBranch(notifyCfg *config.Notify) *cli.Command {
	return cmdRelease(&cli.Command{
		Name:    "branch",
		Aliases: []string{"b"},
		Usage:   "Create a branch and set the development version",
	}, notifyCfg, nil, func(*cli.Command) (model.Preset, error) {
		return model.PresetBranch, nil
	})
}

func cmdTag(notifyCfg *config.Notify) *cli.Command {
	return cmdRelease(&cli.Command{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Set the tag version, create a tag and set the development version",
	}, notifyCfg, nil, func(*cli.Command) (model.Preset, error) {
		return model.PresetTag, nil
	})
}

func cmdSetVersion(notifyCfg *config.Notify) *cli.Command {
	var kind string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "kind",
			Usage:       "Version to set (tag, dev)",
			Value:       "dev",
			Destination: &kind,
		},
	}

	return cmdRelease(&cli.Command{
		Name:  "set-version",
		Usage: "Rewrite the version in " + types.PropertiesFileName + " and commit it",
	}, notifyCfg, flags, func(*cli.Command) (model.Preset, error) {
		switch strings.ToLower(kind) {
		case "tag":
			return model.PresetSetTagVersion, nil
		case "dev":
			return model.PresetSetDevVersion, nil
		default:
			return "", goerr.New("invalid version kind, must be tag or dev",
				goerr.V("kind", kind),
				goerr.T(types.ErrTagConfiguration),
			)
		}
	})
}

// cmdRelease completes cmd with the release flags and an action running the
// preset returned by selectPreset
func cmdRelease(
	cmd *cli.Command,
	notifyCfg *config.Notify,
	extraFlags []cli.Flag,
	selectPreset func(c *cli.Command) (model.Preset, error),
) *cli.Command {
	var (
		releaseCfg config.Release
		svnCfg     config.Svn
	)

	cmd.Flags = append(append(releaseCfg.Flags(), svnCfg.Flags()...), extraFlags...)
	cmd.Action = func(ctx context.Context, c *cli.Command) error {
		logger := ctxlog.From(ctx)

		preset, err := selectPreset(c)
		if err != nil {
			return err
		}

		cfg, err := releaseCfg.Configure(c)
		if err != nil {
			return err
		}
		logger.Debug("Resolved release config", "config", cfg)

		gateway, err := svnCfg.NewClient(cfg)
		if err != nil {
			return err
		}

		notifiers, flush, err := notifyCfg.Notifiers()
		if err != nil {
			return err
		}
		defer flush()

		result, err := usecase.NewRelease(gateway, notifiers...).Release(ctx, preset, cfg)
		if result != nil {
			printSummary(writerOf(c), result)
		}
		return err
	}

	return cmd
}

func writerOf(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func printSummary(w io.Writer, result *model.PipelineResult) {
	state := color.New(color.FgGreen, color.Bold).Sprint(result.State)
	if result.State == model.PipelineFailed {
		state = color.New(color.FgRed, color.Bold).Sprint(result.State)
	}

	fmt.Fprintf(w, "release %s %s (run %s, %s)\n",
		color.New(color.Bold).Sprint(result.Name),
		state,
		result.RunID,
		result.Duration().Round(time.Millisecond),
	)
	if result.FailedStep != "" {
		fmt.Fprintf(w, "  failed step: %s\n", result.FailedStep)
	}
}
