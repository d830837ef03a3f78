package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RootOptions holds global flags and the state resolved from them before any
// subcommand runs.
type RootOptions struct {
	Verbose    bool
	ConfigPath string
	Config     Config

	// Set by PersistentPreRunE.
	Logger zerolog.Logger
	RunID  string

	runIDs RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the lorenz CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(UUIDv7Generator{})
}

func newRootCommand(runIDs RunIDGenerator) *cobra.Command {
	opts := &RootOptions{
		Config: DefaultConfig(),
		Logger: zerolog.Nop(),
		runIDs: runIDs,
	}

	cmd := &cobra.Command{
		Use:   "lorenz",
		Short: "Lorenz SZ40 teleprinter cipher",
		Long: `Emulates the Lorenz SZ40 cipher attachment.

Twelve wheels (five Chi, five Psi, two motor) generate a keystream that is
XORed with 5-bit teleprinter code. The same operation encrypts and decrypts.
Wheel patterns and start positions come from CUE or YAML setting files.

Configuration is read from ~/.lorenz/config.toml, then LORENZ_* environment
variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// No formatter exists yet, so configuration errors go to stderr.
			err := opts.resolve(cmd)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			return err
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.lorenz/config.toml)")
	flags.StringVar(&opts.Config.Format, "format", opts.Config.Format, "output format (json|text)")
	flags.StringVarP(&opts.Config.Patterns, "patterns", "p", "", "wheel setting file (.cue, .yaml)")
	flags.StringVarP(&opts.Config.Setting, "setting", "s", "", "setting name inside the patterns file")
	flags.StringVarP(&opts.Config.Output, "output", "o", opts.Config.Output, "symbol notation (letters|symbols|dotcross)")

	// Add subcommands
	cmd.AddCommand(NewEncryptCommand(opts))
	cmd.AddCommand(NewDecryptCommand(opts))
	cmd.AddCommand(NewKeystreamCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolve layers the config file and environment under the flags that were
// set explicitly, then sets up the run id and logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	ec, err := LoadEnvConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid environment", err)
	}

	// An explicit path must exist; the default one is optional.
	cfgFile, explicit := o.ConfigPath, o.ConfigPath != ""
	if !explicit && ec.Config != "" {
		cfgFile, explicit = ec.Config, true
	}
	if !explicit {
		cfgFile = DefaultConfigPath()
	}
	if cfgFile != "" && (explicit || FileExists(cfgFile)) {
		fc, err := LoadFileConfig(cfgFile)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("load config %s", cfgFile), err)
		}
		ApplyFileConfig(&o.Config, fc, changed)
	}

	ApplyEnvConfig(&o.Config, ec, changed)

	if err := o.Config.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	o.RunID = o.runIDs.Generate()
	o.Logger = NewLogger(cmd.ErrOrStderr(), o.Verbose, o.RunID)
	o.Logger.Debug().
		Str("command", cmd.Name()).
		Str("config_file", cfgFile).
		Str("patterns", o.Config.Patterns).
		Str("setting", o.Config.Setting).
		Str("format", o.Config.Format).
		Str("output", o.Config.Output).
		Msg("configuration")

	return nil
}

// formatter returns an OutputFormatter for cmd's stdout.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Config.Format,
		Writer:  cmd.OutOrStdout(),
		TraceID: o.RunID,
	}
}
