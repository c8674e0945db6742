package tokenstore

import "sync"

// MemoryStore almacén de sesión: vive lo que vive el proceso.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore construye un almacén vacío.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
