package termquest

import (
	"context"
	"time"
)

// Stage identifies which step of the resolution pipeline produced a result.
type Stage string

const (
	StageEmpty    Stage = "empty"
	StageChoice   Stage = "choice"
	StageCommand  Stage = "command"
	StageFallback Stage = "fallback"
	StageResponse Stage = "response"
	StageNotFound Stage = "not_found"
)

// ExecutionEvent records one processed input line.
type ExecutionEvent struct {
	ID           string
	SessionID    string
	Command      string
	Args         []string
	Stage        Stage
	Timestamp    time.Time
	Duration     time.Duration
	Successful   bool
	ErrorMessage string
	Output       string
}

// Listener receives exactly one event per processed line. Returned errors are
// logged by the processor and never reach the player.
type Listener interface {
	OnExecution(ctx context.Context, ev ExecutionEvent) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(ctx context.Context, ev ExecutionEvent) error

func (f ListenerFunc) OnExecution(ctx context.Context, ev ExecutionEvent) error {
	return f(ctx, ev)
}
