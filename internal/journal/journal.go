package journal

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/termquest/internal/db"
	"github.com/vvka-141/termquest/internal/logging"
	"github.com/vvka-141/termquest/internal/retry"
	"github.com/vvka-141/termquest/pkg/termquest"
)

//go:embed schema.sql
var schemaSQL string

const insertSQL = `INSERT INTO termquest_command_event
    (id, session_id, command, args, stage, occurred_at, duration_ms, successful, error_message, output)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''))`

// Execer is the subset of *pgxpool.Pool the journal writes through.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Journal is a termquest.Listener backed by PostgreSQL.
type Journal struct {
	exec     Execer
	executor *retry.Executor
	timeout  time.Duration
	logger   termquest.Logger
	closers  []func() error
}

type Option func(*Journal)

// WithInsertTimeout bounds each insert, including retries.
func WithInsertTimeout(d time.Duration) Option {
	return func(j *Journal) { j.timeout = d }
}

// WithRetry replaces the insert retry policy.
func WithRetry(e *retry.Executor) Option {
	return func(j *Journal) { j.executor = e }
}

func WithLogger(l termquest.Logger) Option {
	return func(j *Journal) { j.logger = l }
}

// New wraps an existing connection. The schema is not created.
func New(exec Execer, opts ...Option) *Journal {
	j := &Journal{
		exec:    exec,
		timeout: termquest.DefaultJournalInsertTimeout,
		logger:  logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(j)
	}
	if j.executor == nil {
		j.executor = retry.NewExecutor(
			retry.NewPostgreSQLErrorClassifier(),
			retry.NewExponentialBackoff(2, retry.WithInitialDelay(50*time.Millisecond), retry.WithMaxDelay(500*time.Millisecond)),
			j.logger,
		)
	}
	return j
}

// Open connects through connector, ensures the schema exists and returns a
// Journal owning the pool. Failures wrap termquest.ErrJournalUnavailable.
func Open(ctx context.Context, connector db.Connector, opts ...Option) (*Journal, error) {
	pool, err := connector.Connect(ctx)
	if err != nil {
		closeConnector(connector)
		return nil, fmt.Errorf("%w: %w", termquest.ErrJournalUnavailable, err)
	}
	if err := EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		closeConnector(connector)
		return nil, fmt.Errorf("%w: %w", termquest.ErrJournalUnavailable, err)
	}

	j := New(pool, opts...)
	j.closers = append(j.closers, func() error { pool.Close(); return nil })
	if c, ok := connector.(io.Closer); ok {
		j.closers = append(j.closers, c.Close)
	}
	j.logger.Verbose("journal ready")
	return j, nil
}

// EnsureSchema creates the event table and index if missing.
func EnsureSchema(ctx context.Context, exec Execer) error {
	if _, err := exec.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create journal schema: %w", err)
	}
	return nil
}

// OnExecution inserts ev. Events without an ID get a fresh UUID.
func (j *Journal) OnExecution(ctx context.Context, ev termquest.ExecutionEvent) error {
	id, err := eventID(ev.ID)
	if err != nil {
		return err
	}
	args := ev.Args
	if args == nil {
		args = []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	err = j.executor.Execute(ctx, func(ctx context.Context) error {
		_, err := j.exec.Exec(ctx, insertSQL,
			id, ev.SessionID, ev.Command, args, string(ev.Stage),
			ev.Timestamp, ev.Duration.Milliseconds(), ev.Successful,
			ev.ErrorMessage, ev.Output,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("journal insert %s: %w", id, err)
	}
	return nil
}

// Close releases the pool and any connector resources. It is safe to call
// more than once.
func (j *Journal) Close() error {
	var errs []error
	for i := len(j.closers) - 1; i >= 0; i-- {
		if err := j.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	j.closers = nil
	return errors.Join(errs...)
}

func eventID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("journal: invalid event id %q: %w", raw, err)
	}
	return id, nil
}

func closeConnector(c db.Connector) {
	if closer, ok := c.(io.Closer); ok {
		closer.Close() //nolint:errcheck
	}
}

var (
	_ termquest.Listener = (*Journal)(nil)
	_ Execer             = (*pgxpool.Pool)(nil)
)
