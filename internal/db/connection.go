package db

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/vvka-141/termquest/internal/config"
)

// ApplicationName is reported to PostgreSQL in pg_stat_activity.
const ApplicationName = "termquest"

// ConnectionConfig is a resolved journal connection.
type ConnectionConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	Database          string
	SSLMode           string
	AuthMethod        string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
	AWSRegion         string
	GoogleInstance    string
}

// FromJournalConfig resolves the journal block of termquest.yaml. A URL, when
// set, supplies host, port, user, password, database and sslmode; explicit
// fields then override it. $PGPASSWORD and $AZURE_CLIENT_SECRET fill secrets
// that are not in the file.
func FromJournalConfig(j config.JournalConfig) (*ConnectionConfig, error) {
	c := &ConnectionConfig{Port: 5432, SSLMode: "prefer"}
	if j.URL != "" {
		parsed, err := ParseURL(j.URL)
		if err != nil {
			return nil, err
		}
		c = parsed
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&c.Host, j.Host)
	override(&c.Username, j.Username)
	override(&c.Database, j.Database)
	override(&c.SSLMode, j.SSLMode)
	if j.Port != 0 {
		c.Port = j.Port
	}

	c.AuthMethod = j.AuthMethod
	if c.AuthMethod == "" {
		c.AuthMethod = config.AuthStandard
	}
	c.AzureTenantID = firstNonEmpty(j.AzureTenantID, os.Getenv("AZURE_TENANT_ID"))
	c.AzureClientID = firstNonEmpty(j.AzureClientID, os.Getenv("AZURE_CLIENT_ID"))
	c.AzureClientSecret = os.Getenv("AZURE_CLIENT_SECRET")
	c.AWSRegion = firstNonEmpty(j.AWSRegion, os.Getenv("AWS_REGION"))
	c.GoogleInstance = j.GoogleInstance
	if c.Password == "" {
		c.Password = os.Getenv("PGPASSWORD")
	}
	return c, nil
}

// ParseURL parses postgres:// and postgresql:// URIs.
func ParseURL(raw string) (*ConnectionConfig, error) {
	if !strings.HasPrefix(raw, "postgres://") && !strings.HasPrefix(raw, "postgresql://") {
		return nil, fmt.Errorf("unrecognized connection URL %q: expected postgres:// or postgresql://", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URL: %w", err)
	}

	c := &ConnectionConfig{
		Host:       "localhost",
		Port:       5432,
		Database:   "postgres",
		SSLMode:    "prefer",
		AuthMethod: config.AuthStandard,
	}
	if h := u.Hostname(); h != "" {
		c.Host = h
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", p, err)
		}
		c.Port = port
	}
	if u.User != nil {
		c.Username = u.User.Username()
		c.Password, _ = u.User.Password()
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		c.Database = db
	}
	if mode := u.Query().Get("sslmode"); mode != "" {
		c.SSLMode = mode
	}
	return c, nil
}

// ConnectionString renders c as a URI for pgxpool.ParseConfig. password
// replaces the configured password when non-empty.
func (c *ConnectionConfig) ConnectionString(password string) string {
	u := &url.URL{
		Scheme: "postgresql",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	if password == "" {
		password = c.Password
	}
	if c.Username != "" {
		if password != "" {
			u.User = url.UserPassword(c.Username, password)
		} else {
			u.User = url.User(c.Username)
		}
	}

	q := url.Values{}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	q.Set("application_name", ApplicationName)
	u.RawQuery = q.Encode()
	return u.String()
}

// String describes the target without secrets.
func (c *ConnectionConfig) String() string {
	return fmt.Sprintf("%s@%s:%d/%s (%s)", c.Username, c.Host, c.Port, c.Database, c.AuthMethod)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
