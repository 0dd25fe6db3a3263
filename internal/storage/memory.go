package storage

import (
	"sort"
	"sync"
)

// MemoryStore keeps values in process memory. Used by tests and --dry-run.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	loaded bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreFrom returns a loaded store pre-populated with values.
func NewMemoryStoreFrom(values map[string]string) *MemoryStore {
	s := &MemoryStore{values: make(map[string]string, len(values)), loaded: true}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.loaded = true
	return nil
}

func (s *MemoryStore) Load() error {
	return s.Init()
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return "", false, ErrNotLoaded
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.values[key] = value
	return nil
}

// Keys lists every stored key in sorted order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *MemoryStore) GetConfigPath() string {
	return "memory"
}
