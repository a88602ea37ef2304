// Package cli implements the fitview command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arloliu/fitview/dataset"
	"github.com/arloliu/fitview/internal/config"
	"github.com/arloliu/fitview/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Populated by the root PersistentPreRunE before any subcommand runs.
	Config *config.Config
	Logger *logging.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the fitview CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fitview",
		Short: "Least-squares fits and scatter charts for small datasets",
		Long: `fitview fits ordinary-least-squares lines to two-column series,
reports slope, intercept and R², and renders the points with their fit line
as SVG charts or a tabbed HTML report.

Without --data the built-in sentiment/busyness dataset is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			return opts.init(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "",
		"config file (default is $HOME/.config/fitview/config.yaml)")

	cmd.AddCommand(NewFitCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewPackCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}

// Execute runs the CLI with args and returns the process exit code.
//
// Errors already reported by a command are not printed again; flag and
// argument errors raised by cobra are printed to stderr and map to
// ExitCommandError.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.reported {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr)
		}

		return exitErr.Code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	return ExitCommandError
}

func (o *RootOptions) init(stderr io.Writer) error {
	v, err := config.New(o.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeConfig+": failed to load config", err)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeConfig+": invalid config", err)
	}

	level := cfg.Logging.Level
	if o.Verbose {
		level = logging.LevelDebug
	}

	o.Config = cfg
	o.Logger = logging.NewLogger(stderr, level, cfg.Logging.Format)

	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// logger returns the configured logger tagged with the command name.
func (o *RootOptions) logger(cmd *cobra.Command) *logging.Logger {
	if o.Logger == nil {
		return logging.NopLogger().WithCommand(cmd.Name())
	}

	return o.Logger.WithCommand(cmd.Name())
}

// loadDataset reads path, or returns the built-in dataset when path is empty.
func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Sentiment(), nil
	}

	return dataset.LoadFile(path)
}
