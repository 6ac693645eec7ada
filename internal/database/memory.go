package database

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/tomuthu-engineer/moibook/internal/model"
)

type memoryService struct {
	mu       sync.RWMutex
	sessions map[string]model.AuthSessionEntity
}

// NewMemory returns a process-local store. Sessions do not survive a restart.
func NewMemory() Service {
	return &memoryService{sessions: make(map[string]model.AuthSessionEntity)}
}

func (s *memoryService) CreateAuthSession(_ context.Context, data model.NewAuthSessionData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[data.Id] = model.AuthSessionEntity{
		Id:           data.Id,
		Mobile:       data.Mobile,
		AccessToken:  slices.Clone(data.AccessToken),
		RefreshToken: slices.Clone(data.RefreshToken),
		CreatedAt:    data.CreatedAt,
		Expiry:       data.Expiry,
	}
	return nil
}

func (s *memoryService) GetAuthSession(_ context.Context, id string) (*model.AuthSessionEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.AccessToken = slices.Clone(e.AccessToken)
	e.RefreshToken = slices.Clone(e.RefreshToken)
	return &e, nil
}

func (s *memoryService) DeleteAuthSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *memoryService) DeleteExpiredAuthSessions(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, e := range s.sessions {
		if !e.Expiry.After(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

func (s *memoryService) Health() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]string{
		"store":    "memory",
		"status":   "up",
		"sessions": strconv.Itoa(len(s.sessions)),
	}
}

func (s *memoryService) Close() error {
	return nil
}
