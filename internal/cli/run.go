package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/roach88/siqr/internal/config"
	"github.com/roach88/siqr/internal/model"
	"github.com/roach88/siqr/internal/outbreak"
	"github.com/roach88/siqr/internal/report"
	"github.com/roach88/siqr/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	ConfigFile string
	Chart      string
	CSV        string

	// RunIDs allows overriding the run id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs store.RunIDGenerator
}

// RunOutput is the payload of a completed run.
type RunOutput struct {
	RunID   string         `json:"run_id"`
	Summary report.Summary `json:"summary"`
	Series  []int          `json:"series"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate an outbreak and report its summary",
		Long: `Simulate an outbreak and report peak, final and R0 statistics.

Parameters come from defaults, an optional --config file (YAML, JSON or
CUE), SIQR_* environment variables and flags, in increasing precedence.

Exit codes:
  0 - Run completed
  1 - Invalid configuration or the run aborted
  2 - Command error (unreadable config, unwritable output, etc.)

Examples:
  siqr run
  siqr run --population-size 5000 --num-days 120 --seed 42
  siqr run --config outbreak.yaml --chart outbreak.png --csv days.csv
  siqr run --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "parameter file (.yaml, .json or .cue)")
	cmd.Flags().StringVar(&opts.Chart, "chart", "", "write a PNG chart of the active series to this path")
	cmd.Flags().StringVar(&opts.CSV, "csv", "", "write per-day tallies as CSV to this path")
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runSimulation(opts *RunOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadConfig(formatter, opts.ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose, cfg.SlogLevel())

	params := cfg.Params
	params.Seed = outbreak.ResolveSeed(params.Seed)
	logger.Info("configuration loaded",
		"file", cfg.File,
		"seed", params.Seed,
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(store.MemoryPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open trace store", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing trace store", "error", closeErr)
		}
	}()

	gen := opts.RunIDs
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}

	runID, result, err := recordRun(ctx, st, gen, params, logger)
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), errorDetails(err))
		return WrapExitError(ExitFailure, "simulation aborted", err)
	}

	summary, err := report.FromStore(ctx, st, runID)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to summarize run", err)
	}

	if opts.Chart != "" {
		if err := writeFile(opts.Chart, func(w io.Writer) error {
			return report.RenderChart(w, result.Series, report.DefaultChartOptions())
		}); err != nil {
			_ = formatter.Error(ErrCodeChartRender, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to write chart", err)
		}
		formatter.VerboseLog("chart written to %s", opts.Chart)
	}

	if opts.CSV != "" {
		if err := writeFile(opts.CSV, func(w io.Writer) error {
			return report.WriteCSV(w, result.Days)
		}); err != nil {
			_ = formatter.Error(ErrCodeIO, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to write csv", err)
		}
		formatter.VerboseLog("csv written to %s", opts.CSV)
	}

	out := RunOutput{RunID: runID, Summary: summary, Series: result.Series}
	return formatter.Success(out, func(w io.Writer) error {
		return report.WriteText(w, summary)
	})
}

// loadConfig resolves the configuration and reports failures through the
// formatter.
func loadConfig(formatter *OutputFormatter, file string, flags *pflag.FlagSet) (*config.Config, error) {
	if file != "" {
		if _, err := os.Stat(file); err != nil {
			_ = formatter.Error(ErrCodeIO, err.Error(), nil)
			return nil, WrapExitError(ExitCommandError, "config file not readable", err)
		}
	}

	cfg, err := config.Load(config.Options{File: file, Flags: flags})
	if err != nil {
		_ = formatter.Error(errorCode(err), err.Error(), errorDetails(err))
		if model.IsConfigError(err) || config.IsSchemaError(err) {
			return nil, WrapExitError(ExitFailure, "invalid configuration", err)
		}
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	return cfg, nil
}

// recordRun simulates one outbreak into st and returns its run id.
func recordRun(
	ctx context.Context,
	st *store.Store,
	gen store.RunIDGenerator,
	params model.Parameters,
	logger *slog.Logger,
) (string, *outbreak.Result, error) {
	rec, err := store.NewRecorder(ctx, st, gen, params.Seed, params)
	if err != nil {
		return "", nil, err
	}

	result, err := outbreak.Run(params, outbreak.NewRand(params.Seed),
		outbreak.WithObserver(rec),
		outbreak.WithLogger(logger),
	)
	if err != nil {
		return rec.RunID(), nil, err
	}

	if err := rec.Finish(result); err != nil {
		return rec.RunID(), nil, err
	}
	return rec.RunID(), result, nil
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return write(f)
}
