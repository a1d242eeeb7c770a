package store

import "sync"

// MemoryStore is a KV that lives only in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	// FailWrites makes Set and Delete fail with this error when non-nil.
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
