package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomuthu-engineer/moibook/internal/database"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

var ErrNoSession = errors.New("no valid session")

// SessionStore is the part of database.Service the session manager needs.
type SessionStore interface {
	CreateAuthSession(ctx context.Context, data model.NewAuthSessionData) error
	GetAuthSession(ctx context.Context, id string) (*model.AuthSessionEntity, error)
	DeleteAuthSession(ctx context.Context, id string) error
}

// Sessions turns backend tokens into cookie-held sessions. The cookie value
// is only ever stored hashed, and the tokens only ever sealed.
type Sessions struct {
	store SessionStore
	keys  *Keyring
	ttl   time.Duration
	now   func() time.Time
}

func NewSessions(store SessionStore, keys *Keyring, ttl time.Duration) *Sessions {
	return &Sessions{store: store, keys: keys, ttl: ttl, now: time.Now}
}

// Start stores a new session for the tokens returned by OTP verification and
// returns the token to hand to the browser.
func (s *Sessions) Start(ctx context.Context, mobile string, tokens model.TokensDTO) (string, *model.AuthSession, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	access, err := s.keys.Seal(tokens.AccessToken)
	if err != nil {
		return "", nil, fmt.Errorf("seal access token: %w", err)
	}
	refresh, err := s.keys.Seal(tokens.RefreshToken)
	if err != nil {
		return "", nil, fmt.Errorf("seal refresh token: %w", err)
	}

	now := s.now()
	data := model.NewAuthSessionData{
		Id:           s.keys.HashSessionToken(token),
		Mobile:       mobile,
		AccessToken:  access,
		RefreshToken: refresh,
		CreatedAt:    now,
		Expiry:       SessionExpiry(tokens.AccessToken, now, s.ttl),
	}
	if err := s.store.CreateAuthSession(ctx, data); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return token, &model.AuthSession{
		Id:           data.Id,
		Mobile:       mobile,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Expiry:       data.Expiry,
	}, nil
}

// Resolve looks up the session for a cookie token. Unknown, expired and
// undecryptable sessions all yield ErrNoSession; expired ones are removed.
func (s *Sessions) Resolve(ctx context.Context, token string) (*model.AuthSession, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	id := s.keys.HashSessionToken(token)
	entity, err := s.store.GetAuthSession(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	if !s.now().Before(entity.Expiry) {
		_ = s.store.DeleteAuthSession(ctx, id)
		return nil, ErrNoSession
	}

	access, err := s.keys.Open(entity.AccessToken)
	if err != nil {
		return nil, ErrNoSession
	}
	refresh, err := s.keys.Open(entity.RefreshToken)
	if err != nil {
		return nil, ErrNoSession
	}

	return &model.AuthSession{
		Id:           entity.Id,
		Mobile:       entity.Mobile,
		AccessToken:  access,
		RefreshToken: refresh,
		Expiry:       entity.Expiry,
	}, nil
}

func (s *Sessions) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.DeleteAuthSession(ctx, s.keys.HashSessionToken(token))
}
