package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartparking/internal/entities"
	"smartparking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJobService_DeleteExpiredSessions(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()
	sessions := repository.NewMemorySessionRepository()
	require.NoError(t, sessions.Save(ctx, &entities.Session{ID: "a", ExpiresAt: now.Add(-time.Second)}))
	require.NoError(t, sessions.Save(ctx, &entities.Session{ID: "b", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, sessions.Save(ctx, &entities.Session{ID: "c"}))

	svc := NewJobService(sessions, zap.NewNop())
	svc.now = func() time.Time { return now }

	n, err := svc.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	a, _ := sessions.Get(ctx, "a")
	b, _ := sessions.Get(ctx, "b")
	c, _ := sessions.Get(ctx, "c")
	assert.Nil(t, a)
	assert.NotNil(t, b)
	assert.NotNil(t, c)
}

func TestJobService_DeleteExpiredSessions_Error(t *testing.T) {
	sessions := new(MockSessionRepository)
	sessions.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	_, err := NewJobService(sessions, zap.NewNop()).DeleteExpiredSessions(context.Background())
	assert.ErrorContains(t, err, "db down")
}

func TestJobService_Start(t *testing.T) {
	svc := NewJobService(repository.NewMemorySessionRepository(), zap.NewNop())

	c, err := svc.Start("@every 1m")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()

	_, err = svc.Start("not a schedule")
	assert.Error(t, err)
}
