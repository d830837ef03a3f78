package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/teleprinter"
)

// KeystreamOptions holds flags for the keystream command.
type KeystreamOptions struct {
	*RootOptions
	Positions PositionFlags
	Count     int
}

// KeystreamResult is the keystream produced from the start positions.
type KeystreamResult struct {
	Setting     string            `json:"setting"`
	Fingerprint string            `json:"fingerprint"`
	Keystream   string            `json:"keystream"`
	Symbols     []int             `json:"symbols"`
	Start       machine.Positions `json:"start"`

	rendered string
}

func (r KeystreamResult) String() string {
	return r.rendered
}

// NewKeystreamCommand creates the keystream command.
func NewKeystreamCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KeystreamOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keystream",
		Short: "Print the keystream from the start positions",
		Long: `Print the first --count keystream characters the machine produces.

The keystream is what a message of all '/' (code 0) would encrypt to.

Examples:
  lorenz keystream -p wheels.cue -s training --count 20
  lorenz keystream -p wheels.cue -o dotcross --count 5`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeystream(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 10, "number of keystream characters")
	opts.Positions.register(cmd)

	return cmd
}

func runKeystream(opts *KeystreamOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if opts.Count < 0 {
		return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("count must be non-negative, got %d", opts.Count), nil)
	}

	loaded, err := opts.loadSetting(f, opts.Positions.override(cmd))
	if err != nil {
		return err
	}
	m := loaded.machine
	start := m.Positions()

	ks := m.Keystream(opts.Count)
	letters, err := teleprinter.Decode(ks)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}

	result := KeystreamResult{
		Setting:     loaded.setting.Name,
		Fingerprint: loaded.fingerprint,
		Keystream:   letters,
		Symbols:     ks,
		Start:       start,
	}
	rendered, err := render(ks, opts.Config.Output)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	result.rendered = strings.TrimRight(rendered, "\n")

	opts.Logger.Info().
		Str("setting", loaded.setting.Name).
		Int("count", opts.Count).
		Msg("keystream")

	return f.Success(result)
}
