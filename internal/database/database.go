package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tomuthu-engineer/moibook/internal/config"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

var ErrNotFound = errors.New("not found")

// Service represents a service that stores web sessions.
type Service interface {
	CreateAuthSession(ctx context.Context, data model.NewAuthSessionData) error
	GetAuthSession(ctx context.Context, id string) (*model.AuthSessionEntity, error)
	DeleteAuthSession(ctx context.Context, id string) error

	// Removes every session that expired at or before now and returns how many
	// were removed.
	DeleteExpiredAuthSessions(ctx context.Context, now time.Time) (int64, error)

	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	Close() error
}

// Open returns the PostgreSQL store when a database host is configured and
// the in-memory store otherwise.
func Open(cfg config.DatabaseConfig) (Service, error) {
	if !cfg.Enabled() {
		slog.Info("no database configured, keeping sessions in memory")
		return NewMemory(), nil
	}
	return New(cfg)
}

type service struct {
	db   *sql.DB
	name string
}

// New connects to PostgreSQL and applies pending migrations.
func New(cfg config.DatabaseConfig) (Service, error) {
	connStr := cfg.ConnString()

	if err := migrateUp(connStr); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, err
	}

	return &service{db: db, name: cfg.Database}, nil
}

func (s *service) CreateAuthSession(ctx context.Context, data model.NewAuthSessionData) error {
	query := "INSERT INTO auth_sessions (id, mobile, access_token, refresh_token, created_at, expires_at) VALUES ($1, $2, $3, $4, $5, $6)"

	res, err := s.db.ExecContext(ctx, query, data.Id, data.Mobile, data.AccessToken, data.RefreshToken, data.CreatedAt, data.Expiry)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected != 1 {
		return fmt.Errorf("expected 1 session to be inserted but was %d", rowsAffected)
	}

	return nil
}

func (s *service) GetAuthSession(ctx context.Context, id string) (*model.AuthSessionEntity, error) {
	query := "SELECT id, mobile, access_token, refresh_token, created_at, expires_at FROM auth_sessions WHERE id = $1"

	var e model.AuthSessionEntity
	err := s.db.QueryRowContext(ctx, query, id).Scan(&e.Id, &e.Mobile, &e.AccessToken, &e.RefreshToken, &e.CreatedAt, &e.Expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (s *service) DeleteAuthSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM auth_sessions WHERE id = $1", id)
	return err
}

func (s *service) DeleteExpiredAuthSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM auth_sessions WHERE expires_at <= $1", now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := map[string]string{"store": "postgres"}

	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		slog.Error("database health check failed", "error", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

func (s *service) Close() error {
	slog.Info("disconnected from database", "database", s.name)
	return s.db.Close()
}
