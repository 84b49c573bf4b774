package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"flight-arrival-regrouper/internal/config"
)

func parse(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Input.Dir = "default_in"
	cfg.Input.Suffix = ".json"
	cfg.Output.Dir = "default_out"
	cfg.Output.Suffix = "_arrival"
	cfg.Processing.Workers = 1
	cfg.Logging.Level = "INFO"

	var applyErr error
	app := &cli.App{
		Name: "regrouper",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}},
			&cli.Float64Flag{Name: "files-per-second"},
			&cli.StringFlag{Name: "report"},
			&cli.StringFlag{Name: "log-level"},
		},
		Action: func(c *cli.Context) error {
			applyErr = applyFlags(c, cfg)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"regrouper"}, args...)))

	return cfg, applyErr
}

func TestApplyFlags_Positional(t *testing.T) {
	cfg, err := parse(t, "in", "out")
	require.NoError(t, err)

	assert.Equal(t, "in", cfg.Input.Dir)
	assert.Equal(t, "out", cfg.Output.Dir)
}

func TestApplyFlags_FlagsWin(t *testing.T) {
	cfg, err := parse(t, "-i", "flag_in", "--workers", "3", "--report", "r.csv", "--log-level", "debug", "pos_in")
	require.NoError(t, err)

	assert.Equal(t, "flag_in", cfg.Input.Dir)
	assert.Equal(t, "default_out", cfg.Output.Dir)
	assert.Equal(t, 3, cfg.Processing.Workers)
	assert.Equal(t, "r.csv", cfg.Report.Path)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestApplyFlags_Invalid(t *testing.T) {
	_, err := parse(t, "--workers", "0")
	assert.ErrorContains(t, err, "workers")

	_, err = parse(t, "a", "b", "c")
	assert.ErrorContains(t, err, "at most 2 arguments")
}

func TestRunFailed_ExitsWithoutMessage(t *testing.T) {
	err := runFailed()

	assert.Equal(t, 1, err.ExitCode())
	assert.Empty(t, err.Error())
}
