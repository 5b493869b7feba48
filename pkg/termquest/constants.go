package termquest

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Session ended normally
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration or parameters
	ExitJournalError = 11 // Failed to connect to the journal database
	ExitStoryError   = 12 // Story file failed validation
	ExitScriptFailed = 13 // A scripted command failed
)

const (
	// DefaultHistorySize is the number of input lines kept per session.
	DefaultHistorySize = 500

	// DefaultUser is the player identity when none is configured.
	DefaultUser = "player"

	// DefaultHostname is shown in the prompt when none is configured.
	DefaultHostname = "termquest"

	// DefaultShell is reported through $SHELL.
	DefaultShell = "/bin/tqsh"

	// DefaultJournalInsertTimeout bounds a single journal write.
	DefaultJournalInsertTimeout = 2 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// MaxOutputPreviewLength caps the command output stored with an event.
	MaxOutputPreviewLength = 2000
)
