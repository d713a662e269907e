package repository

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"smartparking/internal/entities"

	"golang.org/x/crypto/blake2b"
)

// SessionRepository stores browser sessions. Get returns (nil, nil) for an
// unknown id.
type SessionRepository interface {
	Save(ctx context.Context, s *entities.Session) error
	Get(ctx context.Context, id string) (*entities.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// sessionKey is the storage key of a session id. Stores never see the raw
// cookie value.
func sessionKey(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]entities.Session
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]entities.Session)}
}

func (r *memorySessionRepository) Save(_ context.Context, s *entities.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionKey(s.ID)] = *s
	return nil
}

func (r *memorySessionRepository) Get(_ context.Context, id string) (*entities.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionKey(id)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionKey(id))
	return nil
}

func (r *memorySessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, k)
			n++
		}
	}
	return n, nil
}
