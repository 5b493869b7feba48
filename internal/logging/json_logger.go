package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// JSONLogger emits one zerolog JSON object per message.
type JSONLogger struct {
	logger zerolog.Logger
}

// NewJSONLogger creates a JSONLogger writing to out. Verbose messages are
// logged at debug level and dropped unless verbose is true.
func NewJSONLogger(out io.Writer, verbose bool) *JSONLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return &JSONLogger{
		logger: zerolog.New(out).Level(level).With().Timestamp().Str("app", "termquest").Logger(),
	}
}

// With returns a child logger that adds key=value to every event.
func (l *JSONLogger) With(key, value string) *JSONLogger {
	return &JSONLogger{logger: l.logger.With().Str(key, value).Logger()}
}

func (l *JSONLogger) Verbose(format string, args ...interface{}) {
	l.logger.Debug().Msg(sprintf(format, args))
}

func (l *JSONLogger) Info(format string, args ...interface{}) {
	l.logger.Info().Msg(sprintf(format, args))
}

func (l *JSONLogger) Error(format string, args ...interface{}) {
	l.logger.Error().Msg(sprintf(format, args))
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
