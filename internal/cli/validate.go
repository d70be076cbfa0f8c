package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/siqr/internal/model"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	File   string            `json:"file"`
	Params *model.Parameters `json:"params,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a parameter file without running it",
		Long: `Validate a parameter file (YAML, JSON or CUE) and print the resolved
parameters. SIQR_* environment variables are applied as they would be
for a run.

Exit codes:
  0 - Parameters valid
  1 - Parameters invalid
  2 - Command error (file not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, file string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadConfig(formatter, file, nil)
	if err != nil {
		return err
	}

	result := ValidationResult{Valid: true, File: file, Params: &cfg.Params}
	return formatter.Success(result, func(w io.Writer) error {
		return outputValidateText(w, result)
	})
}

func outputValidateText(w io.Writer, result ValidationResult) error {
	p := result.Params
	fmt.Fprintf(w, "✓ %s valid\n", result.File)
	fmt.Fprintf(w, "  population_size:          %d\n", p.PopulationSize)
	fmt.Fprintf(w, "  initial_infected:         %d\n", p.InitialInfected)
	fmt.Fprintf(w, "  num_days:                 %d\n", p.NumDays)
	fmt.Fprintf(w, "  num_contacts:             %d\n", p.NumContacts)
	fmt.Fprintf(w, "  prob_infection:           %g\n", p.ProbInfection)
	fmt.Fprintf(w, "  prob_quarantine:          %g\n", p.ProbQuarantine)
	fmt.Fprintf(w, "  prob_infected_recovery:   %g\n", p.ProbInfectedRecovery)
	fmt.Fprintf(w, "  prob_quarantine_recovery: %g\n", p.ProbQuarantineRecovery)
	fmt.Fprintf(w, "  quarantine_days:          %d\n", p.QuarantineDays)
	fmt.Fprintf(w, "  propagation:              %s\n", p.Propagation)
	fmt.Fprintf(w, "  expiry:                   %s\n", p.Expiry)
	if p.Seed != 0 {
		fmt.Fprintf(w, "  seed:                     %d\n", p.Seed)
	}
	return nil
}
