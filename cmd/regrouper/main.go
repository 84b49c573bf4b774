// Command regrouper reorganizes flight search results by destination airport.
//
// Usage:
//
//	regrouper [options] [INPUT_DIR [OUTPUT_DIR]]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"flight-arrival-regrouper/internal/config"
	"flight-arrival-regrouper/internal/processor"
	"flight-arrival-regrouper/pkg/logger"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:      "regrouper",
		Usage:     "Regroup flight search results into one file per destination airport",
		Version:   version,
		ArgsUsage: "[INPUT_DIR [OUTPUT_DIR]]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"REGROUPER_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Directory containing flight search JSON files",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory receiving <CODE>_arrival.json files",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Number of files flattened concurrently",
			},
			&cli.Float64Flag{
				Name:  "files-per-second",
				Usage: "Maximum input files opened per second (0 = unlimited)",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a per-destination CSV summary to this path",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if err := applyFlags(c, cfg); err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)

	// Cancel the run on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := processor.NewRegrouper(processor.Options{
		InputDir:       cfg.Input.Dir,
		InputSuffix:    cfg.Input.Suffix,
		OutputDir:      cfg.Output.Dir,
		OutputSuffix:   cfg.Output.Suffix,
		Indent:         cfg.Output.Indent,
		Workers:        cfg.Processing.Workers,
		FilesPerSecond: cfg.Processing.FilesPerSecond,
		Burst:          cfg.Processing.Burst,
		ReportPath:     cfg.Report.Path,
	}, log)

	if _, err := r.Run(ctx); err != nil {
		return runFailed()
	}

	return nil
}

// runFailed exits with status 1 without printing: the regrouper has
// already logged the cause.
func runFailed() cli.ExitCoder {
	return cli.Exit("", 1)
}

// applyFlags overrides cfg with explicitly set flags and positional arguments.
func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.NArg() > 2 {
		return fmt.Errorf("expected at most 2 arguments, got %d", c.NArg())
	}
	if c.NArg() > 0 {
		cfg.Input.Dir = c.Args().Get(0)
	}
	if c.NArg() > 1 {
		cfg.Output.Dir = c.Args().Get(1)
	}

	if c.IsSet("input") {
		cfg.Input.Dir = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output.Dir = c.String("output")
	}
	if c.IsSet("workers") {
		cfg.Processing.Workers = c.Int("workers")
	}
	if c.IsSet("files-per-second") {
		cfg.Processing.FilesPerSecond = c.Float64("files-per-second")
	}
	if c.IsSet("report") {
		cfg.Report.Path = c.String("report")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
