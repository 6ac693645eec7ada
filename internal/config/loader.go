package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"
)

const minSecretLength = 16

// Load reads the configuration from the environment (and a .env file, if any).
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("MOIBOOK_PORT out of range: %d", c.Server.Port))
	}

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("MOIBOOK_BACKEND_URL is not an absolute url: %q", c.Backend.BaseURL))
	}
	if c.Backend.Timeout < 0 {
		errs = append(errs, errors.New("MOIBOOK_BACKEND_TIMEOUT must not be negative"))
	}
	for name, p := range map[string]string{
		"MOIBOOK_RETURNS_CREATE_PATH": c.Backend.ReturnsCreatePath,
		"MOIBOOK_RETURNS_TOTAL_PATH":  c.Backend.ReturnsTotalPath,
	} {
		if !strings.HasPrefix(p, "/") {
			errs = append(errs, fmt.Errorf("%s must start with '/': %q", name, p))
		}
	}

	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("MOIBOOK_SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

// ValidateWeb checks what only the web server needs.
func (c *Config) ValidateWeb() error {
	if len(c.Session.Secret) < minSecretLength {
		return fmt.Errorf("MOIBOOK_SESSION_SECRET must be at least %d characters", minSecretLength)
	}
	if c.Session.CleanupInterval <= 0 {
		return errors.New("MOIBOOK_SESSION_CLEANUP_INTERVAL must be positive")
	}
	return nil
}
