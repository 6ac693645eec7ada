package database

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tomuthu-engineer/moibook/internal/config"
)

// SetupTestDatabase starts a throwaway PostgreSQL container and returns the
// config pointing at it together with its teardown.
func SetupTestDatabase() (cfg config.DatabaseConfig, teardown func(context.Context) error, err error) {
	// testcontainers panics when no docker host can be found
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start postgres container: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	const (
		dbName = "moibook"
		dbUser = "moibook"
		dbPwd  = "moibook"
	)

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return config.DatabaseConfig{}, nil, err
	}
	teardown = func(ctx context.Context) error { return container.Terminate(ctx) }

	host, err := container.Host(ctx)
	if err != nil {
		return config.DatabaseConfig{}, teardown, err
	}

	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return config.DatabaseConfig{}, teardown, err
	}

	cfg = config.DatabaseConfig{
		Database: dbName,
		Password: dbPwd,
		Username: dbUser,
		Port:     port.Port(),
		Host:     host,
		Schema:   "public",
	}

	return cfg, teardown, nil
}
