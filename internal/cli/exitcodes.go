package cli

import (
	"errors"

	"github.com/yaklabco/clikemode/internal/configloader"
	"github.com/yaklabco/clikemode/pkg/pipeline"
	"github.com/yaklabco/clikemode/pkg/runner"
)

// ErrChangesNeeded is returned by indent --check when files need
// re-indentation. It only signals the exit code and is not logged.
var ErrChangesNeeded = errors.New("files need re-indentation")

var (
	errInvalidUsage = errors.New("invalid usage")
	errRunFailed    = errors.New("some files could not be processed")
)

// Exit codes for clikemode.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitChangesNeeded indicates a check found files to re-indent, or a
	// generic failure.
	ExitChangesNeeded = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code of an indent run.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasErrors() {
		return ExitIOError
	}
	if check && result.Stats.FilesChanged > result.Stats.FilesWritten {
		return ExitChangesNeeded
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesNeeded):
		return ExitChangesNeeded
	case errors.Is(err, errInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, errRunFailed), pipeline.IsPipelineError(err):
		return ExitIOError
	default:
		return ExitChangesNeeded
	}
}
