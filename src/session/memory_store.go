package session

import (
	"context"
	"sync"
)

// MemoryStorage keeps values in process memory. Everything is lost on restart.
type MemoryStorage struct {
	mu      sync.RWMutex
	clients map[string]map[string]string
}

// NewMemoryStorage creates an empty in-memory store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{clients: make(map[string]map[string]string)}
}

func (s *MemoryStorage) Get(_ context.Context, clientID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.clients[clientID][key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStorage) Set(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.clients[clientID]
	if !ok {
		values = make(map[string]string)
		s.clients[clientID] = values
	}
	values[key] = value
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, clientID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.clients[clientID]
	if !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		delete(s.clients, clientID)
	}
	return nil
}

// Health always succeeds
func (s *MemoryStorage) Health(context.Context) error {
	return nil
}

// Len returns the number of clients holding at least one value
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
