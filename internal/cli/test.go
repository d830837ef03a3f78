package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lorenz/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// TestResult wraps the suite result for text output.
type TestResult struct {
	*harness.SuiteResult
}

func (r TestResult) String() string {
	var b strings.Builder
	for _, s := range r.Scenarios {
		mark := "✓"
		if !s.Pass {
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %s", mark, s.Name)
		if s.Golden == "updated" {
			b.WriteString(" (golden updated)")
		}
		b.WriteString("\n")
		for _, e := range s.Errors {
			fmt.Fprintf(&b, "  %s\n", strings.ReplaceAll(strings.TrimRight(e, "\n"), "\n", "\n  "))
		}
	}
	fmt.Fprintf(&b, "\nTest Summary: %d passed, %d failed, %d total", r.Passed, r.Failed, r.Total)
	if r.Failed == 0 && r.Total > 0 {
		b.WriteString("\n✓ All scenarios passed")
	}
	return b.String()
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run machine scenarios",
		Long: `Run YAML machine scenarios and compare their traces with golden files.

Each scenario names its own setting file, relative to the scenario. Golden
traces live in a golden/ directory beside the scenarios.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  lorenz test ./testdata/scenarios
  lorenz test ./testdata/scenarios --filter "bletchley*"
  lorenz test ./testdata/scenarios --update
  lorenz test ./testdata/scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("scenarios directory not found: %s", dir), nil)
	}

	h := harness.New(opts.Logger)
	suite, err := h.RunSuite(dir, harness.SuiteOptions{Filter: opts.Filter, Update: opts.Update})
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("failed to find scenarios: %v", err), nil)
	}

	opts.Logger.Info().
		Int("passed", suite.Passed).
		Int("failed", suite.Failed).
		Msg("scenarios finished")

	if suite.Failed > 0 {
		msg := fmt.Sprintf("%d scenario(s) failed", suite.Failed)
		if f.Format == "json" {
			if err := f.Error(ErrCodeTestFailed, msg, suite); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(f.Writer, TestResult{suite})
		}
		return NewExitError(ExitFailure, msg)
	}

	if suite.Total == 0 && f.Format != "json" {
		fmt.Fprintln(f.Writer, "No scenarios found.")
		return nil
	}
	return f.Success(TestResult{suite})
}
