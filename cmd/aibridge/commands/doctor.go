package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/aibridge/internal/doctor"
	"github.com/thoreinstein/aibridge/internal/errors"
)

// Exit codes of "doctor".
const (
	exitDoctorWarnings = 1
	exitDoctorErrors   = 2
)

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("warnings found")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("errors found")

func newDoctorCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		showAll bool
		fix     bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration issues",
		Long: `Run diagnostic checks on the project's assistant configurations.

Checks platform detection, settings syntax, instruction documents, Codex
sandbox and approval values, plaintext secrets and file permissions.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --all       Show all checks including passed ones
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
		Example: `  aibridge doctor
  aibridge doctor --fix
  aibridge doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			target := doctor.Target{ProjectDir: a.projectDir, Registry: a.registry}

			runner := doctor.DefaultRunner(target)
			report := runner.Run()

			if fix {
				fixers := runner.Fixers()
				if len(fixers) > 0 {
					if !asJSON && !a.quiet {
						printFixResults(w, fixers)
					} else {
						for _, f := range fixers {
							f.Fix()
						}
					}
					report = runner.Run()
				}
			}

			switch {
			case a.quiet:
			case asJSON:
				if err := writeJSON(w, report); err != nil {
					return err
				}
			default:
				printDoctorReport(w, report, showAll)
			}

			if report.HasErrors() {
				return errors.NewExitError(errDoctorErrors, exitDoctorErrors)
			}
			if report.HasWarnings() {
				return errors.NewExitError(errDoctorWarnings, exitDoctorWarnings)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&asJSON, "json", false, "output results as JSON")
	flags.BoolVar(&showAll, "all", false, "show passed checks too")
	flags.BoolVar(&fix, "fix", false, "fix file permission problems")
	cmd.MarkFlagsMutuallyExclusive("json", "all")
	return cmd
}

func printFixResults(w io.Writer, fixers []doctor.Fixer) {
	for _, f := range fixers {
		for _, r := range f.Fix() {
			if r.Fixed {
				fmt.Fprintf(w, "%s fixed %s: %s\n", success("✓"), r.Path, r.Description)
				continue
			}
			fmt.Fprintf(w, "%s could not fix %s: %s\n", failure("✗"), r.Path, r.Description)
		}
	}
	fmt.Fprintln(w)
}

func printDoctorReport(w io.Writer, report *doctor.DoctorReport, showAll bool) {
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}

		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return success("✓")
	case doctor.SeverityInfo:
		return muted("ℹ")
	case doctor.SeverityWarning:
		return warning("⚠")
	case doctor.SeverityError:
		return failure("✗")
	default:
		return "?"
	}
}
