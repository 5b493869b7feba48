package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/termquest/internal/logging"
	"github.com/vvka-141/termquest/internal/retry"
	"github.com/vvka-141/termquest/pkg/termquest"
)

// TokenProvider supplies the password for each connection attempt.
type TokenProvider interface {
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String describes the provider without secrets.
	String() string
}

// tokenExpiryWarning is how close to expiry a fresh token triggers a warning.
const tokenExpiryWarning = 5 * time.Minute

// staticPassword uses the configured password.
type staticPassword struct{}

func (staticPassword) GetToken(context.Context) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (staticPassword) String() string { return "password" }

type tokenConnector struct {
	config   *ConnectionConfig
	provider TokenProvider
	executor *retry.Executor
	logger   termquest.Logger
}

// NewTokenConnector returns a connector that asks provider for a fresh
// password on every attempt.
func NewTokenConnector(cfg *ConnectionConfig, provider TokenProvider, logger termquest.Logger) Connector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &tokenConnector{config: cfg, provider: provider, executor: newExecutor(logger), logger: logger}
}

func (c *tokenConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	c.logger.Verbose("connecting to journal %s via %s", c.config, c.provider)

	err := c.executor.Execute(ctx, func(ctx context.Context) error {
		token, expiresOn, err := c.provider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire %s token: %w", c.provider, err)
		}
		if !expiresOn.IsZero() && time.Until(expiresOn) < tokenExpiryWarning {
			c.logger.Info("%s token expires in %v", c.provider, time.Until(expiresOn).Round(time.Second))
		}

		poolConfig, err := pgxpool.ParseConfig(c.config.ConnectionString(token))
		if err != nil {
			return fmt.Errorf("failed to parse connection config: %w", err)
		}
		configurePool(poolConfig, c.logger)

		pool, err = openPool(ctx, poolConfig, c.config)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}
