package config

import (
	"fmt"
	"net/url"
	"time"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Database DatabaseConfig
	Session  SessionConfig
	Log      LogConfig
	CLI      CLIConfig
}

type ServerConfig struct {
	Port            int           `env:"MOIBOOK_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"MOIBOOK_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"MOIBOOK_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `env:"MOIBOOK_IDLE_TIMEOUT" env-default:"1m"`
	ShutdownTimeout time.Duration `env:"MOIBOOK_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// BackendConfig points at the MoiBook REST API. Timeout 0 leaves backend calls
// unbounded. The returns paths differ between backend versions.
type BackendConfig struct {
	BaseURL           string        `env:"MOIBOOK_BACKEND_URL" env-default:"http://localhost:5000/api"`
	Timeout           time.Duration `env:"MOIBOOK_BACKEND_TIMEOUT" env-default:"0s"`
	ReturnsCreatePath string        `env:"MOIBOOK_RETURNS_CREATE_PATH" env-default:"/returns"`
	ReturnsTotalPath  string        `env:"MOIBOOK_RETURNS_TOTAL_PATH" env-default:"/returns/total-payment"`
}

// DatabaseConfig is optional. Without a host, sessions are kept in memory.
type DatabaseConfig struct {
	Database string `env:"MOIBOOK_DB_DATABASE" env-default:"moibook"`
	Password string `env:"MOIBOOK_DB_PASSWORD"`
	Username string `env:"MOIBOOK_DB_USERNAME" env-default:"moibook"`
	Port     string `env:"MOIBOOK_DB_PORT" env-default:"5432"`
	Host     string `env:"MOIBOOK_DB_HOST"`
	Schema   string `env:"MOIBOOK_DB_SCHEMA" env-default:"public"`
}

func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

func (c DatabaseConfig) ConnString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   c.Database,
	}
	q := u.Query()
	q.Set("sslmode", "disable")
	q.Set("search_path", c.Schema)
	u.RawQuery = q.Encode()
	return u.String()
}

type SessionConfig struct {
	Secret          string        `env:"MOIBOOK_SESSION_SECRET"`
	TTL             time.Duration `env:"MOIBOOK_SESSION_TTL" env-default:"24h"`
	CookieName      string        `env:"MOIBOOK_SESSION_COOKIE" env-default:"moibook_session"`
	SecureCookie    bool          `env:"MOIBOOK_SESSION_SECURE" env-default:"false"`
	CleanupInterval time.Duration `env:"MOIBOOK_SESSION_CLEANUP_INTERVAL" env-default:"10m"`
}

type LogConfig struct {
	Level  string `env:"MOIBOOK_LOG_LEVEL" env-default:"info"`
	Format string `env:"MOIBOOK_LOG_FORMAT" env-default:"text"`
}

// CLIConfig carries the session the CLI runs with, as printed by `login`.
type CLIConfig struct {
	Token string `env:"MOIBOOK_CLI_TOKEN"`
}
