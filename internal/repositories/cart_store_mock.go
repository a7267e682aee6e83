package repositories

import "sync"

// MockCartStore is an in-memory implementation of CartStore.
type MockCartStore struct {
	snapshots map[string][]byte
	mu        sync.RWMutex
}

// NewMockCartStore creates a new instance of MockCartStore.
func NewMockCartStore() *MockCartStore {
	return &MockCartStore{
		snapshots: make(map[string][]byte),
	}
}

// Load reads the snapshot stored under key.
func (s *MockCartStore) Load(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.snapshots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Save stores the snapshot under key.
func (s *MockCartStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.snapshots[key] = stored
	return nil
}

// Delete removes the snapshot under key.
func (s *MockCartStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snapshots, key)
	return nil
}
