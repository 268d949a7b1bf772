// internal/store/memory.go
package store

import (
	"context"
	"sync"

	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/models"
)

// MemoryStore is a process-lifetime map. Entries are never evicted.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]*models.StoredAnalysis
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{analyses: make(map[string]*models.StoredAnalysis)}
}

func (s *MemoryStore) Put(_ context.Context, analysis *models.StoredAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[analysis.ID] = analysis
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.StoredAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	analysis, ok := s.analyses[id]
	if !ok {
		return nil, errors.NewAnalysisNotFoundError(id)
	}
	return analysis, nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.analyses), nil
}
