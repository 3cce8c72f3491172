package assessment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps records in process memory. Used for local runs and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []AnalysisRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Save(_ context.Context, r *AnalysisRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *r)
	return nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*AnalysisRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.records {
		if r.ID == id {
			rec := r
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) List(_ context.Context) ([]AnalysisRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]AnalysisRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MemoryRepository) Count(_ context.Context, f RecordFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, r := range m.records {
		if f.Matches(r) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryRepository) Ping(context.Context) error {
	return nil
}
