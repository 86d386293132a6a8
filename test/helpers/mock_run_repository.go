package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/geode-planner/internal/domain/planning"
)

// MockRunRepository is an in-memory planning.RunRepository
type MockRunRepository struct {
	mu      sync.RWMutex
	runs    map[string]*planning.Run
	SaveErr error
}

// NewMockRunRepository creates an empty repository
func NewMockRunRepository() *MockRunRepository {
	return &MockRunRepository{runs: make(map[string]*planning.Run)}
}

// Save stores the run, or returns SaveErr when set
func (m *MockRunRepository) Save(ctx context.Context, run *planning.Run) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID().String()] = run
	return nil
}

// FindByID retrieves a run by id
func (m *MockRunRepository) FindByID(ctx context.Context, id planning.RunID) (*planning.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, ok := m.runs[id.String()]
	if !ok {
		return nil, &planning.ErrRunNotFound{ID: id.String()}
	}
	return run, nil
}

// ListRecent returns runs newest first
func (m *MockRunRepository) ListRecent(ctx context.Context, limit int) ([]*planning.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]*planning.Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt().After(runs[j].StartedAt())
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Count returns the number of stored runs
func (m *MockRunRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

var _ planning.RunRepository = (*MockRunRepository)(nil)
