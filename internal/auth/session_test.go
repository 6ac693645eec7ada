package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomuthu-engineer/moibook/internal/database"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

func newTestSessions(store database.Service, now time.Time) *Sessions {
	s := NewSessions(store, NewKeyring("0123456789abcdef"), time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestSessions_StartResolveEnd(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := database.NewMemory()
	s := newTestSessions(store, now)

	token, session, err := s.Start(ctx, "9999999999", model.TokensDTO{AccessToken: "acc", RefreshToken: "ref"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "acc", session.AccessToken)
	assert.True(t, now.Add(time.Hour).Equal(session.Expiry))

	stored, err := store.GetAuthSession(ctx, session.Id)
	require.NoError(t, err)
	assert.NotEqual(t, token, stored.Id, "cookie token must not be the store key")
	assert.NotContains(t, string(stored.AccessToken), "acc")

	got, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "acc", got.AccessToken)
	assert.Equal(t, "ref", got.RefreshToken)
	assert.Equal(t, "9999999999", got.Mobile)

	require.NoError(t, s.End(ctx, token))
	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessions_ResolveExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := database.NewMemory()
	s := newTestSessions(store, now)

	token, session, err := s.Start(ctx, "9999999999", model.TokensDTO{AccessToken: "acc"})
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(time.Hour) }
	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = store.GetAuthSession(ctx, session.Id)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSessions_ResolveUnknown(t *testing.T) {
	s := newTestSessions(database.NewMemory(), time.Now())

	_, err := s.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = s.Resolve(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessions_OtherSecretCannotResolve(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemory()
	now := time.Now()
	token, _, err := newTestSessions(store, now).Start(ctx, "9999999999", model.TokensDTO{AccessToken: "acc"})
	require.NoError(t, err)

	other := NewSessions(store, NewKeyring("fedcba9876543210"), time.Hour)
	_, err = other.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}
