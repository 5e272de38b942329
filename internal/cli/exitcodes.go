package cli

import (
	"errors"

	"github.com/yaklabco/synlex/internal/configloader"
	"github.com/yaklabco/synlex/pkg/runner"
)

// Exit codes for synlex.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitLexErrors indicates tokens carried errors under --strict, or some
	// inputs could not be read.
	ExitLexErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrLexErrorsFound is returned when a strict run produced lexical errors.
// It only signals the exit code and is not logged.
var ErrLexErrorsFound = errors.New("lexical errors found")

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

// ExitCode maps an error returned by the root command to an exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrLexErrorsFound) {
		return ExitLexErrors
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var validationErr *configloader.ValidationError
	if errors.As(err, &validationErr) {
		return ExitConfigError
	}
	return ExitLexErrors
}

// ExitCodeFromResult determines the exit code of a tokenize run.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitLexErrors
	}
	if strict && result.HasLexErrors() {
		return ExitLexErrors
	}
	return ExitSuccess
}
