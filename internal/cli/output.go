package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Process exit codes. ExitFailure means the input reached the machine or
// the validator and was rejected there. ExitCommandError means it never got
// that far.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitCommandError = 2
)

// Error codes reported in the JSON envelope. Setting file failures use the
// codes from the patterns package.
const (
	ErrCodeGeneric          = "E001"
	ErrCodeInvalidInput     = "E002"
	ErrCodeInvalidPositions = "E003"
	ErrCodeNoPatterns       = "E007"
	ErrCodeTestFailed       = "E013"
)

// ExitError is what a lorenz command returns once the failure has been
// reported to the user. main exits with Code and prints nothing more.
type ExitError struct {
	Code    int
	Message string
	Err     error // config or environment error behind Message, if any
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

// NewExitError returns an ExitError for a failure the command has already
// printed, such as a failing scenario run.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError attaches an exit code to a configuration failure found
// before any command runs: a bad LORENZ_* variable or config file.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode maps the error returned by the root command onto the process
// exit code. Errors cobra raises itself, such as an unknown flag, carry no
// ExitError and map to ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes command results either as plain text or as the
// JSON envelope selected with --format json.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	TraceID string // run id, also on every log line
}

// CLIResponse is the JSON envelope. Data holds a CipherResult,
// KeystreamResult, ValidationResult or TestResult; Error is set instead when
// the command fails.
type CLIResponse struct {
	Status  string    `json:"status"` // ok or error
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
	TraceID string    `json:"trace_id,omitempty"`
}

// CLIError reports a failure in the envelope. Code is one of the E0xx codes
// above or from the patterns package. Details carries the file, line and
// column of a patterns schema error.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success outputs a successful result in the configured format. In text
// mode data is printed with fmt, so result types implement fmt.Stringer.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
			TraceID: f.TraceID,
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}

// Fail reports an error through the formatter and returns an ExitError
// carrying exitCode, for commands to return from RunE.
func (f *OutputFormatter) Fail(exitCode int, code, message string, details any) error {
	if err := f.Error(code, message, details); err != nil {
		return err
	}
	return NewExitError(exitCode, message)
}
