package client

import "sync"

// TokenStore persists an admin credential between runs, the way the panel
// keeps its token and display name in durable key-value storage.
type TokenStore interface {
	Save(token, name string) error
	Load() (token, name string, err error)
	Clear() error
}

// MemoryTokenStore keeps the credential in memory. It satisfies TokenStore
// for tests and short-lived tools.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
	name  string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Save(token, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.name = name
	return nil
}

func (s *MemoryTokenStore) Load() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.name, nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.name = ""
	return nil
}
