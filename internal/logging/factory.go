package logging

import (
	"fmt"
	"io"

	"github.com/vvka-141/termquest/pkg/termquest"
)

// Log formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns the logger for the given format.
func New(format string, out io.Writer, verbose bool) (termquest.Logger, error) {
	switch format {
	case "", FormatText:
		return NewConsoleLoggerTo(out, verbose), nil
	case FormatJSON:
		return NewJSONLogger(out, verbose), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s): %w", format, FormatText, FormatJSON, termquest.ErrInvalidConfig)
	}
}
