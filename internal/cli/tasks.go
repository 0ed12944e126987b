package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/idilsaglam/todolist/internal/command"
	"github.com/idilsaglam/todolist/internal/todo"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty list, replacing any existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.contract.Instantiate(cmd.Context(), command.InstantiateMsg{})
			if err != nil {
				return opError("init", err)
			}
			return opts.formatter(cmd.OutOrStdout(), cmd.ErrOrStderr()).Success("initialized", resp)
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task (the title can be multiple words)",
		Example: `  todo add Buy milk
  todo add "Call mom"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := norm.NFC.String(strings.Join(args, " "))
			return opts.execute(cmd, "added", command.ExecuteMsg{Add: &command.AddMsg{Title: title}})
		},
	}
}

// NewDoneCommand creates the done command.
func NewDoneCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle done for the task at 1-based position id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("done", args[0])
			if err != nil {
				return err
			}
			return opts.execute(cmd, "toggled", command.ExecuteMsg{Update: &command.UpdateMsg{ID: id}})
		},
	}
}

// NewRmCommand creates the rm command.
func NewRmCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove the task at 1-based position id",
		Long: `Remove the task at 1-based position id.

Every task after it moves up one position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			return opts.execute(cmd, "removed", command.ExecuteMsg{Remove: &command.RemoveMsg{ID: id}})
		},
	}
}

// parseID reads a task position. Range checks belong to the store, so 0 is
// accepted here and rejected there as invalid input. A number too large for
// any list is not found.
func parseID(op, s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, opError(op, fmt.Errorf("%w: id %s out of range (max %d)", todo.ErrNotFound, s, uint32(math.MaxUint32)))
	}
	if err != nil {
		return 0, NewExitError(ExitUsage, fmt.Sprintf("%s: not a number: %s", op, s))
	}
	return uint32(n), nil
}

// execute runs one mutation through the contract and reports it.
func (o *RootOptions) execute(cmd *cobra.Command, okMsg string, msg command.ExecuteMsg) error {
	a, err := o.open(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	resp, err := a.contract.Execute(cmd.Context(), msg)
	if err != nil {
		return opError(msg.Method(), err)
	}
	return o.formatter(cmd.OutOrStdout(), cmd.ErrOrStderr()).Success(okMsg, resp)
}

// NewListCommand creates the ls command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	var group bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("group") {
				opts.cfg.Group = group
			}

			a, err := opts.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			tasks, err := a.store.List(cmd.Context())
			if err != nil {
				return opError("ls", err)
			}

			f := opts.formatter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if f.Structured() {
				return f.Success("", rows(tasks))
			}
			renderPanel(cmd.OutOrStdout(), tasks, opts.cfg.Group)
			return nil
		},
	}

	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")

	return cmd
}
