package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"pointpal/internal/domain"
)

// MemorySessionStore is the in-process SessionStore used by tests and by
// deployments without redis.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]domain.User
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[uuid.UUID]domain.User)}
}

func (s *MemorySessionStore) Save(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[user.ID] = *user
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, userID uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.sessions[userID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	out := user
	return &out, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
