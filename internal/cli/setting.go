package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/patterns"
)

// PositionFlags holds --chi, --psi and --mu start position overrides.
type PositionFlags struct {
	Chi []int
	Psi []int
	Mu  []int
}

func (p *PositionFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&p.Chi, "chi", nil, "Chi start positions, comma separated")
	cmd.Flags().IntSliceVar(&p.Psi, "psi", nil, "Psi start positions, comma separated")
	cmd.Flags().IntSliceVar(&p.Mu, "mu", nil, "motor start positions, comma separated")
}

// override returns the groups given on the command line, or nil if none
// were.
func (p *PositionFlags) override(cmd *cobra.Command) *machine.Positions {
	var pos machine.Positions
	set := false
	for _, f := range []struct {
		name string
		src  []int
		dst  *[]int
	}{
		{"chi", p.Chi, &pos.Chi},
		{"psi", p.Psi, &pos.Psi},
		{"mu", p.Mu, &pos.Mu},
	} {
		if cmd.Flags().Changed(f.name) {
			*f.dst = append([]int{}, f.src...)
			set = true
		}
	}
	if !set {
		return nil
	}
	return &pos
}

// loadedSetting is a setting file entry with its machine built.
type loadedSetting struct {
	setting     *patterns.Setting
	machine     *machine.Machine
	fingerprint string
}

// loadSetting loads the configured setting and builds its machine with the
// position overrides applied. Failures are reported through f.
func (o *RootOptions) loadSetting(f *OutputFormatter, override *machine.Positions) (*loadedSetting, error) {
	if o.Config.Patterns == "" {
		return nil, f.Fail(ExitCommandError, ErrCodeNoPatterns,
			"no patterns file configured (use --patterns, LORENZ_PATTERNS or the config file)", nil)
	}

	file, err := patterns.Load(o.Config.Patterns)
	if err != nil {
		return nil, o.failLoad(f, err)
	}
	setting, err := file.Setting(o.Config.Setting)
	if err != nil {
		return nil, o.failLoad(f, err)
	}

	m, err := setting.Machine(override)
	if err != nil {
		if override != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeInvalidPositions, err.Error(), nil)
		}
		return nil, o.failLoad(f, err)
	}

	fp, err := setting.Fingerprint()
	if err != nil {
		return nil, f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}

	o.Logger.Debug().
		Str("patterns", o.Config.Patterns).
		Str("setting", setting.Name).
		Str("fingerprint", fp).
		Msg("setting loaded")

	return &loadedSetting{setting: setting, machine: m, fingerprint: fp}, nil
}

// failLoad maps a patterns error onto the response. Missing files are
// command errors; anything wrong inside the file is a validation failure.
func (o *RootOptions) failLoad(f *OutputFormatter, err error) error {
	var le *patterns.LoadError
	if !errors.As(err, &le) {
		return f.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	exit := ExitFailure
	switch le.Code {
	case patterns.ErrCodeNotFound, patterns.ErrCodeBadFormat, patterns.ErrCodeUnknown:
		exit = ExitCommandError
	}

	var details any
	if le.Pos.IsValid() {
		details = map[string]any{
			"file":   le.Pos.Filename(),
			"line":   le.Pos.Line(),
			"column": le.Pos.Column(),
		}
	}
	return f.Fail(exit, le.Code, le.Error(), details)
}

// positionsText renders positions for text output.
func positionsText(p machine.Positions) string {
	return fmt.Sprintf("chi=%v psi=%v mu=%v", p.Chi, p.Psi, p.Mu)
}
