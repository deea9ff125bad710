package keyvalue

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string][]byte{}}
}

func (s *MemoryStore) Get(ctx context.Context, clientID, key string, dest any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.records[memoryKey(clientID, key)]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := decodeRecord(raw, dest); err != nil {
		s.mu.Lock()
		delete(s.records, memoryKey(clientID, key))
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Set(ctx context.Context, clientID, key string, value any) error {
	encoded, err := encodeRecord(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[memoryKey(clientID, key)] = encoded
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, clientID string, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.records, memoryKey(clientID, key))
	}
	s.mu.Unlock()
	return nil
}

// SetRaw stores an unwrapped payload, letting tests stage corrupt records.
func (s *MemoryStore) SetRaw(clientID, key string, raw []byte) {
	s.mu.Lock()
	s.records[memoryKey(clientID, key)] = raw
	s.mu.Unlock()
}

func memoryKey(clientID, key string) string {
	return clientID + "/" + key
}
