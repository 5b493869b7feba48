package termquest

import (
	"errors"
	"strings"
)

// Sentinel errors for application-level failures.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	err := session.RunLines(ctx, r, w)
//	if errors.Is(err, termquest.ErrScriptFailed) {
//	    // A line in the script failed
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoryInvalid indicates a story file failed validation.
	ErrStoryInvalid = errors.New("invalid story")

	// ErrJournalUnavailable indicates the command journal database could not be reached.
	ErrJournalUnavailable = errors.New("journal unavailable")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrScriptFailed indicates a non-interactive script contained a failing command.
	ErrScriptFailed = errors.New("script failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrStoryInvalid):
		return ExitStoryError
	case errors.Is(err, ErrJournalUnavailable):
		return ExitJournalError
	case errors.Is(err, ErrScriptFailed):
		return ExitScriptFailed
	}

	// cobra reports flag and argument misuse as plain errors
	errStr := err.Error()
	for _, pattern := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "accepts ", "requires at least", "invalid argument"} {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
