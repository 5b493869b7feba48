// Package logging provides concrete implementations of the termquest.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: prefixed plain-text lines, stderr by default
//   - JSONLogger: structured zerolog events for --log-format json
//   - NullLogger: discards all messages
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
