package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/termquest/internal/config"
	"github.com/vvka-141/termquest/internal/logging"
	"github.com/vvka-141/termquest/internal/retry"
	"github.com/vvka-141/termquest/pkg/termquest"
)

// Pool sizing for the journal. Inserts are small and sequential per session.
const (
	DefaultMaxConns        = 2
	DefaultMinConns        = 0
	DefaultMaxConnIdleTime = 5 * time.Minute
)

// Connector opens a connection pool. Connectors that hold extra resources
// also implement io.Closer; call Close after the pool is closed.
type Connector interface {
	Connect(ctx context.Context) (*pgxpool.Pool, error)
}

// NewConnector returns the connector for cfg.AuthMethod.
func NewConnector(cfg *ConnectionConfig, logger termquest.Logger) (Connector, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	switch cfg.AuthMethod {
	case config.AuthStandard, "":
		return &tokenConnector{config: cfg, provider: staticPassword{}, executor: newExecutor(logger), logger: logger}, nil
	case config.AuthAWSIAM:
		provider, err := NewAWSIAMTokenProvider(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), cfg.AWSRegion, cfg.Username)
		if err != nil {
			return nil, err
		}
		return NewTokenConnector(cfg, provider, logger), nil
	case config.AuthAzureEntra:
		provider, err := newAzureProvider(cfg)
		if err != nil {
			return nil, err
		}
		return NewTokenConnector(cfg, provider, logger), nil
	case config.AuthGoogleIAM:
		if cfg.GoogleInstance == "" {
			return nil, fmt.Errorf("google-iam auth requires google_instance (project:region:instance)")
		}
		if cfg.Username == "" {
			return nil, fmt.Errorf("google-iam auth requires a username")
		}
		return NewGoogleCloudSQLConnector(cfg, logger), nil
	default:
		return nil, fmt.Errorf("auth method %q: %w", cfg.AuthMethod, termquest.ErrUnsupportedAuthMethod)
	}
}

func newExecutor(logger termquest.Logger) *retry.Executor {
	strategy := retry.NewExponentialBackoff(termquest.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(termquest.DefaultRetryInitialDelay),
		retry.WithMaxDelay(termquest.DefaultRetryMaxDelay),
	)
	return retry.NewExecutor(retry.NewPostgreSQLErrorClassifier(), strategy, logger)
}

func configurePool(poolConfig *pgxpool.Config, logger termquest.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("journal notice: %s", notice.Message)
	}
}

// openPool creates and pings a pool, closing it again if the ping fails.
func openPool(ctx context.Context, poolConfig *pgxpool.Config, cfg *ConnectionConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, cfg)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, cfg)
	}
	return pool, nil
}

// wrapConnectionError adds a hint for the common connection failures.
func wrapConnectionError(err error, cfg *ConnectionConfig) error {
	msg := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var hint string
	switch {
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "actively refused"):
		hint = fmt.Sprintf("connection refused to %s (is PostgreSQL running? try: pg_isready -h %s -p %d)", addr, cfg.Host, cfg.Port)
	case strings.Contains(msg, "no such host"):
		hint = fmt.Sprintf("cannot resolve host %q", cfg.Host)
	case strings.Contains(msg, "password authentication failed"):
		hint = fmt.Sprintf("password authentication failed for %q (check $PGPASSWORD)", cfg.Username)
	case strings.Contains(msg, "does not exist"):
		hint = fmt.Sprintf("database %q does not exist (create it with: createdb %s)", cfg.Database, cfg.Database)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		hint = fmt.Sprintf("connection timed out to %s", addr)
	case strings.Contains(msg, "ssl") || strings.Contains(msg, "tls"):
		hint = fmt.Sprintf("SSL/TLS error (sslmode=%s)", cfg.SSLMode)
	default:
		return fmt.Errorf("failed to connect to journal database: %w", err)
	}
	return fmt.Errorf("%s: %w", hint, err)
}
