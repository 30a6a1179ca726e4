// File: services/session/memory.go
package session

import (
	"context"
	"sync"
	"time"

	"carepro/models"
	"carepro/utils"
)

// MemoryStore is an in-process Store used by tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	tokens  map[string]string
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
		tokens:  make(map[string]string),
	}
}

func (s *MemoryStore) Load(ctx context.Context, flowID string) (*models.SessionRecord, error) {
	s.mu.RLock()
	data, ok := s.records[flowID]
	_, hasToken := s.tokens[flowID]
	s.mu.RUnlock()

	if !ok || !hasToken {
		return nil, ErrNotFound
	}
	return decodeRecord(data)
}

func (s *MemoryStore) Save(ctx context.Context, flowID string, record *models.SessionRecord) error {
	record.LastUpdatedAt = time.Now()
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.records[flowID] = data
	s.tokens[flowID] = utils.HashToken(record.AccessToken)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, flowID string) error {
	s.mu.Lock()
	delete(s.records, flowID)
	delete(s.tokens, flowID)
	s.mu.Unlock()
	return nil
}

// SeedRaw plants raw bytes as a flow's record, with the token marker set.
// Tests use it to simulate corrupt storage.
func (s *MemoryStore) SeedRaw(flowID string, data []byte) {
	s.mu.Lock()
	s.records[flowID] = data
	s.tokens[flowID] = "seeded"
	s.mu.Unlock()
}
