package repository

import (
	"context"
	"testing"
	"time"

	"smartparking/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKey(t *testing.T) {
	k := sessionKey("abc")
	assert.Len(t, k, 64)
	assert.NotContains(t, k, "abc")
	assert.Equal(t, k, sessionKey("abc"))
	assert.NotEqual(t, k, sessionKey("abd"))
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	now := time.Now()

	s := &entities.Session{ID: "sid-1", Token: "tok", Email: "a@b.c", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok", got.Token)

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Delete(ctx, "sid-1"))
	got, _ = repo.Get(ctx, "sid-1")
	assert.Nil(t, got)
}

func TestMemorySessionRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()
	now := time.Now()

	require.NoError(t, repo.Save(ctx, &entities.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, repo.Save(ctx, &entities.Session{ID: "new", ExpiresAt: now.Add(time.Minute)}))

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	old, _ := repo.Get(ctx, "old")
	assert.Nil(t, old)
	fresh, _ := repo.Get(ctx, "new")
	assert.NotNil(t, fresh)
}
