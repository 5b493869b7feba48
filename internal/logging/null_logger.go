package logging

import "github.com/vvka-141/termquest/pkg/termquest"

// NullLogger drops everything. Sessions, processors and journal connectors
// fall back to it when the caller passes no logger.
type NullLogger struct{}

var _ termquest.Logger = (*NullLogger)(nil)

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (*NullLogger) Verbose(string, ...interface{}) {}
func (*NullLogger) Info(string, ...interface{})    {}
func (*NullLogger) Error(string, ...interface{})   {}
