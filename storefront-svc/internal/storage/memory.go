package storage

import (
	"context"
	"encoding/json"
	"sync"

	"foodie-storefront/storefront-svc/internal/service"
	"foodie-storefront/storefront-svc/internal/service/checkout"
)

// MemorySessionStore keeps sessions as JSON so callers never share state.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string][]byte)}
}

func (s *MemorySessionStore) Load(ctx context.Context, id string) (*checkout.Session, error) {
	s.mu.RLock()
	data, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, service.ErrSessionNotFound
	}

	var sess checkout.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sess *checkout.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[sess.ID] = data
	s.mu.Unlock()
	return nil
}
