package main

import (
	"github.com/urfave/cli/v2"

	"quizstats/internal/config"
	"quizstats/pkg/contracts"
)

const defaultConfigFile = "quizstats.yaml"

func tournamentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file; missing files are ignored",
			Value:   defaultConfigFile,
			EnvVars: []string{config.EnvPrefix + "_CONFIG"},
		},
		&cli.StringFlag{Name: "in", Usage: "directory holding the scoresheets"},
		&cli.StringFlag{Name: "out", Usage: "report workbook path, or directory for csv"},
		&cli.IntFlag{Name: "rounds", Usage: "number of rounds played"},
		&cli.IntFlag{Name: "rooms", Usage: "number of rooms"},
		&cli.StringFlag{Name: "prefix", Usage: "scoresheet file name prefix"},
		&cli.BoolFlag{Name: "strict", Usage: "fail on non-numeric score cells instead of counting them as zero"},
		&cli.StringFlag{Name: "format", Usage: "report format: xlsx or csv"},
	}
}

func newApp(r *runner) *cli.App {
	return &cli.App{
		Name:    config.AppName,
		Usage:   "compile season standings from quiz tournament scoresheets",
		Version: contracts.GetFullVersionString(),
		Flags:   tournamentFlags(),
		Action:  r.compile,
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "verify that every expected scoresheet exists without aggregating",
				Flags:  tournamentFlags(),
				Action: r.check,
			},
		},
		Writer:    r.stdout,
		ErrWriter: r.stderr,
	}
}

// setIn returns the nearest context in the lineage where name was set on the
// command line, so flags work before or after the subcommand.
func setIn(c *cli.Context, name string) (*cli.Context, bool) {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx, true
		}
	}
	return nil, false
}

// loadConfig reads the configuration file and environment, then applies
// command line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if ctx, ok := setIn(c, "config"); ok {
		path = ctx.String("config")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if ctx, ok := setIn(c, "in"); ok {
		cfg.Tournament.InputDir = ctx.String("in")
	}
	if ctx, ok := setIn(c, "out"); ok {
		cfg.Report.OutputPath = ctx.String("out")
	}
	if ctx, ok := setIn(c, "rounds"); ok {
		cfg.Tournament.Rounds = ctx.Int("rounds")
	}
	if ctx, ok := setIn(c, "rooms"); ok {
		cfg.Tournament.Rooms = ctx.Int("rooms")
	}
	if ctx, ok := setIn(c, "prefix"); ok {
		cfg.Tournament.FilePrefix = ctx.String("prefix")
	}
	if ctx, ok := setIn(c, "strict"); ok && ctx.Bool("strict") {
		cfg.Tournament.ParseMode = config.ParseModeStrict
	}
	if ctx, ok := setIn(c, "format"); ok {
		cfg.Report.Format = ctx.String("format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
