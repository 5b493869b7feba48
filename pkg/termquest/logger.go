package termquest

// Logger receives diagnostics from sessions, the processor and the journal.
// It never receives game output; that goes to the Terminal.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Verbose is shown only with --verbose.
	Verbose(format string, args ...interface{})
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}
