package retry

import (
	"context"
	"time"

	"github.com/vvka-141/termquest/internal/logging"
	"github.com/vvka-141/termquest/pkg/termquest"
)

// Executor runs an operation until it succeeds, fails fatally, or runs out
// of attempts.
type Executor struct {
	classifier termquest.ErrorClassifier
	strategy   termquest.BackoffStrategy
	logger     termquest.Logger
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an executor. A nil logger discards retry messages.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier termquest.ErrorClassifier, strategy termquest.BackoffStrategy, logger termquest.Logger) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
		logger:     logger,
	}
}

// WithOnRetry returns a copy of the executor that calls fn before each wait.
func (e *Executor) WithOnRetry(fn func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// Execute runs op once, then retries transient failures up to the
// strategy's MaxAttempts. A negative MaxAttempts retries until ctx is done.
// The last error is returned.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	maxAttempts := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if maxAttempts >= 0 && attempt >= maxAttempts {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		e.logger.Verbose("retry %d after %v: %v", attempt+1, delay, err)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op(ctx)
	}
	return err
}
