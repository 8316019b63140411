package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/cognicore/biasbars/pkg/biasbars/config"
	"github.com/cognicore/biasbars/pkg/biasbars/logger"
	"github.com/cognicore/biasbars/pkg/biasbars/report"
	"github.com/cognicore/biasbars/pkg/biasbars/wordstat"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "biasbars: %v\n", err)
		return 1
	}
	return 0
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:            "biasbars",
		Usage:           "word frequencies by rating tier and gender",
		UsageText:       "biasbars [-search target] [options] <data_file>",
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "print words containing `TARGET` (case-insensitive)"},
			&cli.BoolFlag{Name: "bars", Usage: "with -search, print tier proportions per gender"},
			&cli.StringFlag{Name: "format", Value: "text", Usage: "output format: text, json or yaml"},
			&cli.StringFlag{Name: "config", Usage: "YAML configuration `FILE`"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides config)"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json (overrides config)"},
			&cli.BoolFlag{Name: "open-genders", Usage: "accept unrecognized gender codes as their own bucket"},
		},
		Action: action,
	}
}

func action(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return nil
	}
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one data file, got %d arguments", c.NArg())
	}
	dataFile := c.Args().First()

	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Logging.Format = c.String("log-format")
	}
	if c.Bool("open-genders") {
		cfg.GenderPolicy = wordstat.Open.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Setup(c.App.ErrWriter, cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("cli")

	opts := append(cfg.IndexOptions(), wordstat.WithLogger(logger.WithComponent("wordstat")))
	idx := wordstat.New(opts...)
	if err := idx.IngestFile(dataFile); err != nil {
		return err
	}

	if c.IsSet("search") {
		target := c.String("search")
		log.Debug("searching", "target", target, "run_id", idx.RunID())
		return report.WriteSearch(c.App.Writer, idx, target, c.Bool("bars"), format)
	}
	if c.Bool("bars") {
		log.Warn("-bars has no effect without -search")
	}
	return report.WriteDump(c.App.Writer, idx, dataFile, format)
}
