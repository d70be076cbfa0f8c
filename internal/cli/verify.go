package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/siqr/internal/config"
	"github.com/roach88/siqr/internal/outbreak"
	"github.com/roach88/siqr/internal/store"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	ConfigFile string
	Runs       int

	// RunIDs allows overriding the run id generator (for testing).
	RunIDs store.RunIDGenerator
}

// VerifyRun is one replayed run.
type VerifyRun struct {
	RunID      string `json:"run_id"`
	Digest     string `json:"digest"`
	SeriesSame bool   `json:"series_same"`
}

// VerifyResult holds the overall verification result.
type VerifyResult struct {
	Seed          uint64      `json:"seed"`
	Runs          []VerifyRun `json:"runs"`
	Deterministic bool        `json:"deterministic"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return newVerifyCommand(&VerifyOptions{RootOptions: rootOpts})
}

func newVerifyCommand(opts *VerifyOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Replay a seeded run and verify determinism",
		Long: `Run the same configuration several times with one seed and verify
that every run produces the same digest and the same stored series.

Exit codes:
  0 - All runs identical
  1 - Runs diverged, or the configuration is invalid
  2 - Command error

Examples:
  siqr verify --seed 42
  siqr verify --config outbreak.yaml --runs 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "parameter file (.yaml, .json or .cue)")
	cmd.Flags().IntVar(&opts.Runs, "runs", 2, "number of runs to compare (at least 2)")
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runVerify(opts *VerifyOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if opts.Runs < 2 {
		_ = formatter.Error(ErrCodeGeneric, "--runs must be at least 2", nil)
		return NewExitError(ExitCommandError, "--runs must be at least 2")
	}

	cfg, err := loadConfig(formatter, opts.ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose, cfg.SlogLevel())

	params := cfg.Params
	params.Seed = outbreak.ResolveSeed(params.Seed)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(store.MemoryPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open trace store", err)
	}
	defer st.Close()

	gen := opts.RunIDs
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}

	for i := 0; i < opts.Runs; i++ {
		if _, _, err := recordRun(ctx, st, gen, params, logger); err != nil {
			_ = formatter.Error(errorCode(err), err.Error(), errorDetails(err))
			return WrapExitError(ExitFailure, fmt.Sprintf("run %d aborted", i+1), err)
		}
	}

	result, err := compareRuns(ctx, st, params.Seed)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}

	text := func(w io.Writer) error {
		return outputVerifyText(w, result, opts.Verbose)
	}
	if !result.Deterministic {
		if err := formatter.Failure(ErrCodeDivergence, "runs diverged", result, text); err != nil {
			return err
		}
		// Divergence = exit code 1
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return formatter.Success(result, text)
}

// compareRuns checks every stored run against the first one.
func compareRuns(ctx context.Context, st *store.Store, seed uint64) (VerifyResult, error) {
	result := VerifyResult{Seed: seed, Deterministic: true}

	ids, err := st.ListRunIDs(ctx)
	if err != nil {
		return result, err
	}

	var baseSeries []int
	var baseDigest string
	for i, id := range ids {
		run, err := st.ReadRun(ctx, id)
		if err != nil {
			return result, err
		}
		series, err := st.ReadSeries(ctx, id)
		if err != nil {
			return result, err
		}

		if i == 0 {
			baseSeries, baseDigest = series, run.Digest
		}
		vr := VerifyRun{
			RunID:      id,
			Digest:     run.Digest,
			SeriesSame: slices.Equal(series, baseSeries),
		}
		if !vr.SeriesSame || vr.Digest != baseDigest {
			result.Deterministic = false
		}
		result.Runs = append(result.Runs, vr)
	}
	return result, nil
}

func outputVerifyText(w io.Writer, result VerifyResult, verbose bool) error {
	fmt.Fprintf(w, "Verify Summary: %d run(s), seed %d\n", len(result.Runs), result.Seed)
	fmt.Fprintln(w)

	for _, run := range result.Runs {
		status := "✓"
		if !run.SeriesSame || run.Digest != result.Runs[0].Digest {
			status = "✗"
		}
		fmt.Fprintf(w, "%s Run: %s\n", status, run.RunID)
		if verbose {
			fmt.Fprintf(w, "  Digest: %s\n", run.Digest)
		}
	}
	fmt.Fprintln(w)

	if result.Deterministic {
		fmt.Fprintln(w, "✓ All runs identical")
	} else {
		fmt.Fprintln(w, "✗ Determinism verification failed")
	}
	return nil
}
