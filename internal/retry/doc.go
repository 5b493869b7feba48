// Package retry retries journal database operations that fail for
// transient reasons.
//
// An Executor combines an ErrorClassifier, which decides whether an error is
// worth retrying, with a BackoffStrategy, which decides how long to wait.
//
//	executor := retry.NewExecutor(
//	    retry.NewPostgreSQLErrorClassifier(),
//	    retry.NewExponentialBackoff(3),
//	    logger,
//	)
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return pool.Ping(ctx)
//	})
//
// Executors are safe for concurrent use.
package retry
