package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/patterns"
)

// SettingSummary describes one setting in a validated file.
type SettingSummary struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Sizes       machine.Positions  `json:"sizes"`
	Start       *machine.Positions `json:"start,omitempty"`
	Fingerprint string             `json:"fingerprint"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool             `json:"valid"`
	File     string           `json:"file"`
	Format   string           `json:"format"`
	Settings []SettingSummary `json:"settings"`
}

func (r ValidationResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✓ %s: %d setting(s)\n", r.File, len(r.Settings))
	for _, s := range r.Settings {
		fmt.Fprintf(&b, "\n  %s", s.Name)
		if s.Description != "" {
			fmt.Fprintf(&b, " (%s)", s.Description)
		}
		fmt.Fprintf(&b, "\n    sizes       %s\n", positionsText(s.Sizes))
		if s.Start != nil {
			fmt.Fprintf(&b, "    start       %s\n", positionsText(*s.Start))
		}
		fmt.Fprintf(&b, "    fingerprint %s\n", s.Fingerprint)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <patterns-file>",
		Short: "Validate a wheel setting file",
		Long: `Validate a CUE or YAML wheel setting file.

CUE files are checked against the embedded schema, and every setting is
built into a machine so bad cams and start positions are caught. Each
setting is listed with its wheel sizes and fingerprint. Two stations whose
fingerprints match hold the same cam patterns.

Exit codes:
  0 - File is valid
  1 - File has validation errors
  2 - Command error (file not found, unsupported extension)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	file, err := patterns.Load(path)
	if err != nil {
		return opts.failLoad(f, err)
	}

	result := ValidationResult{
		Valid:    true,
		File:     path,
		Format:   string(file.Format),
		Settings: make([]SettingSummary, 0, len(file.Settings)),
	}
	for _, s := range file.Settings {
		opts.Logger.Debug().Str("setting", s.Name).Msg("validating setting")

		m, err := s.Machine(nil)
		if err != nil {
			return opts.failLoad(f, err)
		}
		fp, err := s.Fingerprint()
		if err != nil {
			return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
		}
		result.Settings = append(result.Settings, SettingSummary{
			Name:        s.Name,
			Description: s.Description,
			Sizes:       m.Sizes(),
			Start:       s.Positions,
			Fingerprint: fp,
		})
	}

	opts.Logger.Info().Str("file", path).Int("settings", len(result.Settings)).Msg("valid")
	return f.Success(result)
}
