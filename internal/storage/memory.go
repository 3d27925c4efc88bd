package storage

import "sync"

// MemorySnapshots keeps snapshot blobs in memory. Used in demo mode and tests.
type MemorySnapshots struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{blobs: make(map[string][]byte)}
}

func (s *MemorySnapshots) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *MemorySnapshots) Put(key string, value []byte) error {
	blob := make([]byte, len(value))
	copy(blob, value)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = blob
	return nil
}

func (s *MemorySnapshots) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
