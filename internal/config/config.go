package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/termquest/pkg/termquest"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "termquest.yaml"

// Journal auth methods.
const (
	AuthStandard   = "standard"
	AuthAWSIAM     = "aws-iam"
	AuthAzureEntra = "azure-entra"
	AuthGoogleIAM  = "google-iam"
)

type SessionConfig struct {
	User     string `yaml:"user"`
	Group    string `yaml:"group"`
	Hostname string `yaml:"hostname"`
	Home     string `yaml:"home"`
}

// JournalConfig describes the optional PostgreSQL command journal.
// The password is never read from the file; use $PGPASSWORD or the URL.
type JournalConfig struct {
	Enabled        bool   `yaml:"enabled"`
	URL            string `yaml:"url,omitempty"`
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

type Config struct {
	Session     SessionConfig     `yaml:"session"`
	Env         map[string]string `yaml:"env"`
	EnvFile     string            `yaml:"env_file,omitempty"`
	Story       string            `yaml:"story,omitempty"`
	Seed        string            `yaml:"seed,omitempty"`
	Timeout     string            `yaml:"timeout,omitempty"`
	HistorySize int               `yaml:"history_size,omitempty"`
	LogFormat   string            `yaml:"log_format,omitempty"`
	Journal     JournalConfig     `yaml:"journal"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// Load reads termquest.yaml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a config file from an explicit path. Relative story, seed
// and env_file paths are resolved against the file's directory. Defaults
// are not applied.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", termquest.ErrInvalidConfig, path, err)
	}

	base := filepath.Dir(path)
	for _, p := range []*string{&cfg.Story, &cfg.Seed, &cfg.EnvFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Session.User == "" {
		c.Session.User = termquest.DefaultUser
	}
	if c.Session.Group == "" {
		c.Session.Group = c.Session.User
	}
	if c.Session.Hostname == "" {
		c.Session.Hostname = termquest.DefaultHostname
	}
	if c.Session.Home == "" {
		c.Session.Home = "/home/" + c.Session.User
	}
	if c.HistorySize == 0 {
		c.HistorySize = termquest.DefaultHistorySize
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.Journal.Enabled {
		if c.Journal.AuthMethod == "" {
			c.Journal.AuthMethod = AuthStandard
		}
		if c.Journal.Port == 0 {
			c.Journal.Port = 5432
		}
		if c.Journal.SSLMode == "" {
			c.Journal.SSLMode = "prefer"
		}
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := c.CommandTimeout(); err != nil {
		return err
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("%w: history_size must not be negative", termquest.ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.Session.Home, "/") {
		return fmt.Errorf("%w: session.home must be absolute, got %q", termquest.ErrInvalidConfig, c.Session.Home)
	}
	if strings.ContainsAny(c.Session.User, "/: ") {
		return fmt.Errorf("%w: invalid session.user %q", termquest.ErrInvalidConfig, c.Session.User)
	}
	if !c.Journal.Enabled {
		return nil
	}

	j := c.Journal
	switch j.AuthMethod {
	case AuthStandard:
		if j.URL == "" && (j.Host == "" || j.Database == "") {
			return fmt.Errorf("%w: journal requires url or host and database", termquest.ErrInvalidConfig)
		}
	case AuthAWSIAM:
		if j.AWSRegion == "" {
			return fmt.Errorf("%w: journal auth aws-iam requires aws_region", termquest.ErrInvalidConfig)
		}
	case AuthGoogleIAM:
		if j.GoogleInstance == "" {
			return fmt.Errorf("%w: journal auth google-iam requires google_instance", termquest.ErrInvalidConfig)
		}
	case AuthAzureEntra:
	default:
		return fmt.Errorf("%w: journal auth_method %q: %w", termquest.ErrInvalidConfig, j.AuthMethod, termquest.ErrUnsupportedAuthMethod)
	}
	return nil
}

// CommandTimeout parses Timeout. An empty value means no timeout.
func (c *Config) CommandTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: invalid timeout %q", termquest.ErrInvalidConfig, c.Timeout)
	}
	return d, nil
}
