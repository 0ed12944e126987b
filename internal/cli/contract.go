package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/command"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/todo"
	"github.com/idilsaglam/todolist/internal/tui"
)

// NewExecCommand creates the exec command.
func NewExecCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <message>",
		Short: "Apply a raw execute message",
		Long: `Apply a raw execute message. Exactly one of:

  {"add":{"title":"..."}}
  {"update":{"id":N}}
  {"remove":{"id":N}}`,
		Example: `  todo exec '{"add":{"title":"Buy milk"}}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := command.DecodeExecute([]byte(args[0]))
			if err != nil {
				return opError("exec", err)
			}
			return opts.execute(cmd, "executed "+msg.Method(), msg)
		},
	}
}

// NewQueryCommand creates the query command.
func NewQueryCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "query <message>",
		Short:   `Answer a raw query message ({"list":{}})`,
		Example: `  todo query '{"list":{}}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := command.DecodeQuery([]byte(args[0]))
			if err != nil {
				return opError("query", err)
			}

			a, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			b, err := a.contract.Query(cmd.Context(), msg)
			if err != nil {
				return opError("query", err)
			}

			f := opts.formatter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if !f.Structured() {
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			var tasks []model.Task
			if err := json.Unmarshal(b, &tasks); err != nil {
				return WrapExitError(ExitFailure, "query", err)
			}
			return f.Success("", tasks)
		},
	}
}

// NewTUICommand creates the tui command.
func NewTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the list interactively",
		Long: `Browse and edit the list interactively.

Keys: a add, space toggle, d remove, / filter, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := tui.Run(cmd.Context(), a.store); err != nil {
				return opError("tui", err)
			}
			return nil
		},
	}
}

type versionInfo struct {
	Binary   string `json:"binary" yaml:"binary"`
	Contract string `json:"contract,omitempty" yaml:"contract,omitempty"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the binary version and the version that created the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			v := versionInfo{Binary: opts.Version}
			info, err := todo.Version(cmd.Context(), a.kv)
			switch {
			case err == nil:
				v.Contract, v.Version = info.Contract, info.Version
			case !errors.Is(err, todo.ErrDocumentMissing):
				return opError("version", err)
			}

			f := opts.formatter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if f.Structured() {
				return f.Success("", v)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "binary    %s\n", v.Binary)
			if v.Contract == "" {
				fmt.Fprintln(out, "contract  (not initialized)")
			} else {
				fmt.Fprintf(out, "contract  %s %s\n", v.Contract, v.Version)
			}
			return nil
		},
	}
}
