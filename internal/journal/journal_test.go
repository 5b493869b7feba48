package journal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/termquest/internal/retry"
	"github.com/vvka-141/termquest/pkg/termquest"
)

type execCall struct {
	sql  string
	args []any
}

type fakeExecer struct {
	mu    sync.Mutex
	calls []execCall
	errs  []error
}

func (f *fakeExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func fastRetry() Option {
	return WithRetry(retry.NewExecutor(
		retry.NewPostgreSQLErrorClassifier(),
		retry.NewExponentialBackoff(2, retry.WithInitialDelay(time.Millisecond), retry.WithJitter(0)),
		nil,
	))
}

func TestJournal_OnExecution(t *testing.T) {
	fake := &fakeExecer{}
	j := New(fake, fastRetry())

	id := uuid.New()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := j.OnExecution(context.Background(), termquest.ExecutionEvent{
		ID:           id.String(),
		SessionID:    "s1",
		Command:      "cat",
		Args:         []string{"notes.txt"},
		Stage:        termquest.StageCommand,
		Timestamp:    ts,
		Duration:     1500 * time.Millisecond,
		Successful:   false,
		ErrorMessage: "cat: notes.txt: no such file or directory",
	})
	require.NoError(t, err)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Contains(t, call.sql, "INSERT INTO termquest_command_event")
	assert.Equal(t, []any{
		id, "s1", "cat", []string{"notes.txt"}, "command",
		ts, int64(1500), false,
		"cat: notes.txt: no such file or directory", "",
	}, call.args)
}

func TestJournal_DefaultsIDAndArgs(t *testing.T) {
	fake := &fakeExecer{}
	j := New(fake, fastRetry())

	require.NoError(t, j.OnExecution(context.Background(), termquest.ExecutionEvent{Stage: termquest.StageEmpty}))
	require.Len(t, fake.calls, 1)

	id, ok := fake.calls[0].args[0].(uuid.UUID)
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, []string{}, fake.calls[0].args[3])
}

func TestJournal_InvalidID(t *testing.T) {
	fake := &fakeExecer{}
	j := New(fake)

	err := j.OnExecution(context.Background(), termquest.ExecutionEvent{ID: "not-a-uuid"})
	require.Error(t, err)
	assert.Empty(t, fake.calls)
}

func TestJournal_RetriesTransientFailures(t *testing.T) {
	fake := &fakeExecer{errs: []error{&pgconn.PgError{Code: "08006"}}}
	j := New(fake, fastRetry())

	require.NoError(t, j.OnExecution(context.Background(), termquest.ExecutionEvent{}))
	assert.Len(t, fake.calls, 2)
}

func TestJournal_FatalFailureIsReturned(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	fake := &fakeExecer{errs: []error{unique}}
	j := New(fake, fastRetry())

	err := j.OnExecution(context.Background(), termquest.ExecutionEvent{})
	require.ErrorIs(t, err, unique)
	assert.Len(t, fake.calls, 1)
}

func TestEnsureSchema(t *testing.T) {
	fake := &fakeExecer{}
	require.NoError(t, EnsureSchema(context.Background(), fake))
	require.Len(t, fake.calls, 1)
	assert.Contains(t, fake.calls[0].sql, "CREATE TABLE IF NOT EXISTS termquest_command_event")

	fake = &fakeExecer{errs: []error{errors.New("permission denied")}}
	require.Error(t, EnsureSchema(context.Background(), fake))
}

type failingConnector struct{ closed bool }

func (f *failingConnector) Connect(context.Context) (*pgxpool.Pool, error) {
	return nil, errors.New("connection refused")
}

func (f *failingConnector) Close() error {
	f.closed = true
	return nil
}

func TestOpen_ConnectFailure(t *testing.T) {
	conn := &failingConnector{}
	j, err := Open(context.Background(), conn)
	require.ErrorIs(t, err, termquest.ErrJournalUnavailable)
	assert.Nil(t, j)
	assert.True(t, conn.closed)
	assert.Equal(t, termquest.ExitJournalError, termquest.ExitCodeForError(err))
}

func TestJournal_CloseIsIdempotent(t *testing.T) {
	calls := 0
	j := New(&fakeExecer{})
	j.closers = []func() error{func() error { calls++; return nil }}

	require.NoError(t, j.Close())
	require.NoError(t, j.Close())
	assert.Equal(t, 1, calls)
}
