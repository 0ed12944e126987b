package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/ui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DataDir    string
	Backend    string
	Format     string
	Theme      string
	Verbose    bool

	// Version of the binary, stamped into the document on init.
	Version string

	cfg    *config.Config
	logger *log.Logger
}

// NewRootCommand creates the root command for the todo CLI.
func NewRootCommand(version string) *cobra.Command {
	cmd, _ := newRoot(version)
	return cmd
}

func newRoot(version string) (*cobra.Command, *RootOptions) {
	opts := &RootOptions{Version: version}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny task list",
		Long: `A single ordered task list kept in one document.

Tasks are addressed by their 1-based position, as shown by "todo ls".
Removing a task renumbers every task after it.`,
		Example: `  todo add "Buy milk"
  todo ls
  todo done 2
  todo rm 3`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default todo.toml or .todo.toml)")
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", config.DefaultDataDir, "directory holding the list")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", config.DefaultBackend, "storage backend (json|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.Theme, "theme", config.DefaultTheme, "color theme (classic|neon|mono)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, c.CommandPath(), err)
	})

	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewDoneCommand(opts))
	cmd.AddCommand(NewRmCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewTUICommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd, opts
}

// setup layers flags over the loaded config, then applies theme and logger.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitFailure, "config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = o.DataDir
	}
	if flags.Changed("backend") {
		cfg.Backend = o.Backend
	}
	if flags.Changed("format") {
		cfg.Format = o.Format
	}
	if flags.Changed("theme") {
		cfg.Theme = o.Theme
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitUsage, "config", err)
	}

	ui.SetTheme(cfg.Theme)
	o.cfg = cfg
	o.logger = logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Timestamp: cfg.Log.Timestamp,
	})
	o.logger.Debug("config loaded", "file", cfg.File, "backend", cfg.Backend, "data", cfg.DataPath())
	return nil
}

// formatter returns the output formatter for cmd. Before setup has run it
// falls back to the --format flag.
func (o *RootOptions) formatter(out, errOut io.Writer) *OutputFormatter {
	format := o.Format
	if o.cfg != nil {
		format = o.cfg.Format
	}
	return &OutputFormatter{Format: format, Writer: out, ErrWriter: errOut}
}

// Execute runs the command line args and returns the process exit code.
// Errors are reported on out or errOut in the selected format.
func Execute(ctx context.Context, version string, args []string, out, errOut io.Writer) int {
	cmd, opts := newRoot(version)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	opts.formatter(out, errOut).Error(err)
	return GetExitCode(err)
}
