// Package store provides ScenarioStore implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/warp/vanslyke/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	scenarios map[string]generic.ScenarioRecord
	runs      map[string][]generic.RunRecord
	now       func() time.Time
}

var _ generic.ScenarioStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		scenarios: make(map[string]generic.ScenarioRecord),
		runs:      make(map[string][]generic.RunRecord),
		now:       time.Now,
	}
}

// SaveScenario inserts or replaces a scenario, keeping CreatedAt on replace.
func (m *Memory) SaveScenario(_ context.Context, sc generic.ScenarioRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	sc.CreatedAt = now
	if existing, ok := m.scenarios[sc.ID]; ok {
		sc.CreatedAt = existing.CreatedAt
	}
	sc.UpdatedAt = now
	m.scenarios[sc.ID] = sc
	return nil
}

// GetScenario returns nil, nil if not found.
func (m *Memory) GetScenario(_ context.Context, id string) (*generic.ScenarioRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sc, ok := m.scenarios[id]
	if !ok {
		return nil, nil
	}
	return &sc, nil
}

// ListScenarios returns scenarios ordered by name, then ID.
func (m *Memory) ListScenarios(_ context.Context) ([]generic.ScenarioRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]generic.ScenarioRecord, 0, len(m.scenarios))
	for _, sc := range m.scenarios {
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteScenario removes a scenario and its runs.
func (m *Memory) DeleteScenario(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.scenarios[id]; !ok {
		return fmt.Errorf("%w: %s", generic.ErrScenarioNotFound, id)
	}
	delete(m.scenarios, id)
	delete(m.runs, id)
	return nil
}

// AppendRun logs a run. Append-only.
func (m *Memory) AppendRun(_ context.Context, run generic.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.scenarios[run.ScenarioID]; !ok {
		return fmt.Errorf("%w: %s", generic.ErrScenarioNotFound, run.ScenarioID)
	}
	for _, existing := range m.runs[run.ScenarioID] {
		if existing.ID == run.ID {
			return fmt.Errorf("run %s already logged", run.ID)
		}
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = m.now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	run.Unresolved = append([]string{}, run.Unresolved...)
	m.runs[run.ScenarioID] = append(m.runs[run.ScenarioID], run)
	return nil
}

// ListRuns returns runs newest first.
func (m *Memory) ListRuns(_ context.Context, scenarioID string, limit int) ([]generic.RunRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = generic.DefaultRunLimit
	}

	runs := append([]generic.RunRecord(nil), m.runs[scenarioID]...)
	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID < runs[j].ID
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Reset clears all data.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scenarios = make(map[string]generic.ScenarioRecord)
	m.runs = make(map[string][]generic.RunRecord)
	return nil
}
