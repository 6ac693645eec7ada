package database

import (
	"context"
	"log/slog"
	"time"
)

// RunCleanup purges expired sessions every interval until ctx is done.
func RunCleanup(ctx context.Context, s Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := s.DeleteExpiredAuthSessions(ctx, now)
			if err != nil {
				slog.Error("session cleanup failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions removed", "count", n)
			}
		}
	}
}
