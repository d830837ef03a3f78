package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/teleprinter"
)

// CipherOptions holds flags for encrypt and decrypt.
type CipherOptions struct {
	*RootOptions
	Positions PositionFlags
}

// CipherResult is the result of feeding text through the machine.
type CipherResult struct {
	Setting     string            `json:"setting"`
	Fingerprint string            `json:"fingerprint"`
	Input       string            `json:"input"`
	Output      string            `json:"output"`
	Symbols     []int             `json:"symbols"`
	Start       machine.Positions `json:"start"`
	Final       machine.Positions `json:"final"`

	rendered string
}

func (r CipherResult) String() string {
	return r.rendered
}

// NewEncryptCommand creates the encrypt command.
func NewEncryptCommand(rootOpts *RootOptions) *cobra.Command {
	return newCipherCommand(rootOpts, "encrypt", "Encrypt teleprinter text")
}

// NewDecryptCommand creates the decrypt command. Decryption is the same
// operation as encryption; the separate name reads better in scripts.
func NewDecryptCommand(rootOpts *RootOptions) *cobra.Command {
	return newCipherCommand(rootOpts, "decrypt", "Decrypt teleprinter text")
}

func newCipherCommand(rootOpts *RootOptions, name, short string) *cobra.Command {
	opts := &CipherOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   name + " [text]",
		Short: short,
		Long: short + `.

Text is read from the argument or, if none is given, from stdin. Whitespace
is ignored. Letters are case-insensitive; the other symbols are the
shiftless ITA2 letters /, 3, 4, 8, 9 and +.

Examples:
  lorenz ` + name + ` -p wheels.cue -s training BLETCHLEY99PARK
  echo ATTACK99AT99DAWN | lorenz ` + name + ` -p wheels.yaml --mu 0,0
  lorenz ` + name + ` -p wheels.cue -o dotcross --format json ALAN`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCipher(opts, args, cmd)
		},
	}
	opts.Positions.register(cmd)

	return cmd
}

func runCipher(opts *CipherOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	raw, err := readText(args, cmd.InOrStdin())
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("reading input: %v", err), nil)
	}
	symbols, err := teleprinter.Encode(raw)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalidInput, err.Error(), nil)
	}

	loaded, err := opts.loadSetting(f, opts.Positions.override(cmd))
	if err != nil {
		return err
	}
	m := loaded.machine
	start := m.Positions()

	out, err := m.Feed(symbols)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeInvalidInput, err.Error(), nil)
	}

	input, err := teleprinter.Decode(symbols)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	output, err := teleprinter.Decode(out)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}

	opts.Logger.Info().
		Str("setting", loaded.setting.Name).
		Int("symbols", len(out)).
		Msg(cmd.Name())

	result := CipherResult{
		Setting:     loaded.setting.Name,
		Fingerprint: loaded.fingerprint,
		Input:       input,
		Output:      output,
		Symbols:     out,
		Start:       start,
		Final:       m.Positions(),
	}
	result.rendered, err = render(out, opts.Config.Output)
	if err != nil {
		return f.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}
	return f.Success(result)
}

// readText returns the first argument or all of r, with whitespace removed.
func readText(args []string, r io.Reader) (string, error) {
	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		b, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		text = string(b)
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text), nil
}

// render formats symbols in the requested notation.
//
// letters:  one line of teleprinter letters
// symbols:  code points separated by spaces
// dotcross: one row of five impulses per symbol
func render(symbols []int, notation string) (string, error) {
	switch notation {
	case OutputLetters:
		return teleprinter.Decode(symbols)

	case OutputSymbols:
		parts := make([]string, len(symbols))
		for i, s := range symbols {
			parts[i] = strconv.Itoa(s)
		}
		return strings.Join(parts, " "), nil

	case OutputDotCross:
		rows := make([]string, len(symbols))
		for i, s := range symbols {
			bits, err := teleprinter.ImpulsesOf(s)
			if err != nil {
				return "", err
			}
			if rows[i], err = teleprinter.DotCross(bits); err != nil {
				return "", err
			}
		}
		return strings.Join(rows, "\n"), nil
	}
	return "", fmt.Errorf("unknown output notation %q", notation)
}
