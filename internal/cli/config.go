package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/termquest/internal/config"
	"github.com/vvka-141/termquest/internal/logging"
	"github.com/vvka-141/termquest/internal/params"
	"github.com/vvka-141/termquest/internal/shell"
	"github.com/vvka-141/termquest/pkg/termquest"
)

// sessionFlagValues holds the flags shared by every command that starts a
// session. Non-empty values override termquest.yaml.
type sessionFlagValues struct {
	env     []string
	envFile string
	story   string
	seed    string
}

func addSessionFlags(cmd *cobra.Command, f *sessionFlagValues) {
	cmd.Flags().StringArrayVarP(&f.env, "env", "e", nil,
		"Session variable as KEY=VALUE (can be specified multiple times)\n"+
			"Precedence: --env > --env-file > env in termquest.yaml > defaults\n"+
			"Example: --env EDITOR=nano --env LANG=C")
	cmd.Flags().StringVar(&f.envFile, "env-file", "",
		"Load session variables from a .env file (overrides env_file in termquest.yaml)")
	cmd.Flags().StringVar(&f.story, "story", "",
		"Path to a story YAML file (default: the built-in story)")
	cmd.Flags().StringVar(&f.seed, "seed", "",
		"Directory copied into the player's home instead of the built-in files")
}

// loadConfig reads the --config file or termquest.yaml from the working
// directory. A missing termquest.yaml is not an error; a missing --config
// file is.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w: %s: %w", termquest.ErrInvalidConfig, path, err)
			}
			return nil, err
		}
		return cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.Config{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger. --log-format wins over the config.
func newLogger(cmd *cobra.Command, cfg *config.Config) (termquest.Logger, error) {
	format := cfg.LogFormat
	if f, _ := cmd.Flags().GetString("log-format"); f != "" {
		format = f
	}
	return logging.New(format, cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

// applySessionFlags copies flag overrides into cfg and returns the parsed
// --env variables.
func applySessionFlags(cfg *config.Config, f sessionFlagValues) (map[string]string, error) {
	if f.envFile != "" {
		cfg.EnvFile = f.envFile
	}
	if f.story != "" {
		cfg.Story = f.story
	}
	if f.seed != "" {
		cfg.Seed = f.seed
	}

	vars, err := params.ParseKeyValuePairs(f.env)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --env: %w", termquest.ErrInvalidConfig, err)
	}
	return vars, nil
}

// openSession loads .env into the process, resolves configuration and
// starts a session. The caller closes the session.
func openSession(ctx context.Context, cmd *cobra.Command, f sessionFlagValues) (*shell.Session, termquest.Logger, error) {
	_ = godotenv.Load()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	vars, err := applySessionFlags(cfg, f)
	if err != nil {
		return nil, nil, err
	}
	if len(vars) > 0 {
		logger.Verbose("--env overrides %d variable(s)", len(vars))
	}

	sess, err := shell.New(ctx, cfg, shell.WithLogger(logger), shell.WithEnv(vars))
	if err != nil {
		return nil, nil, err
	}
	logger.Verbose("Session %s started", sess.ID())
	return sess, logger, nil
}
