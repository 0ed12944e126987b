package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todolist/internal/todo"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0
	ExitFailure = 1 // storage, capacity, anything the user cannot fix by retyping
	ExitUsage   = 2 // bad arguments, invalid input, unknown id
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error // optional
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// opError wraps a store failure from op, picking the exit code from its kind.
func opError(op string, err error) *ExitError {
	return WrapExitError(exitCodeFor(err), op, err)
}

func exitCodeFor(err error) int {
	switch todo.ErrorKind(err) {
	case todo.KindInvalidInput, todo.KindNotFound:
		return ExitUsage
	default:
		return ExitFailure
	}
}

// GetExitCode extracts the exit code from an error. Errors that are not an
// ExitError come from cobra's own flag and argument checks, so they count as
// usage errors.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// OutputFormatter handles text, JSON and YAML output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
}

// CLIResponse is the envelope for json and yaml output.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"`
}

// CLIError carries the error kind (invalid_input, not_found, ...) as Code.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

func (f *OutputFormatter) encode(v CLIResponse) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", f.Format)
}

// Structured reports whether output is machine readable.
func (f *OutputFormatter) Structured() bool {
	return f.Format == "json" || f.Format == "yaml"
}

// Success prints data in a structured format, or msg as a check line in text.
func (f *OutputFormatter) Success(msg string, data any) error {
	if f.Structured() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	ui.OK(f.Writer, msg)
	return nil
}

// Error reports err. Structured formats go to Writer so scripts read one
// stream; text goes to ErrWriter with a hint where one helps.
func (f *OutputFormatter) Error(err error) {
	kind := todo.ErrorKind(err)
	if f.Structured() {
		code := kind
		if code == todo.KindUnknown {
			code = "usage"
			if GetExitCode(err) == ExitFailure {
				code = "failure"
			}
		}
		_ = f.encode(CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: err.Error()}})
		return
	}

	msg := err.Error()
	if kind != todo.KindUnknown {
		msg = kind + ": " + msg
	}
	ui.Fail(f.ErrWriter, msg)
	switch kind {
	case todo.KindNotFound:
		fmt.Fprintln(f.ErrWriter, ui.Dim("Hint: run `todo ls` to see valid ids"))
	case todo.KindDocumentMissing:
		fmt.Fprintln(f.ErrWriter, ui.Dim("Hint: run `todo init` to create the list"))
	}
}
