/*
store.go - Persistence interface for saved scenarios and derivation runs

PURPOSE:
  Defines the interface between the API and the database. The engine never
  persists anything; only scenario documents and the log of derivations run
  against them are stored.

KEY INTERFACES:
  ScenarioStore: Saved scenarios (upsert, get, list, delete) and their runs

APPEND-ONLY RUNS:
  Runs are only ever appended. There is no UpdateRun. A run records the
  document as it was derived, so later edits to the scenario do not rewrite
  history. Deleting a scenario deletes its runs.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - generic/store/memory.go: In-memory for testing and throwaway servers

SEE ALSO:
  - api/handlers.go: Uses ScenarioStore
*/
package generic

import (
	"context"
	"time"
)

// DefaultRunLimit is used when ListRuns is called with limit <= 0.
const DefaultRunLimit = 100

// ScenarioRecord is a saved scenario document.
type ScenarioRecord struct {
	ID           string
	Name         string
	Description  string
	DocumentJSON string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RunRecord is one logged derivation.
type RunRecord struct {
	ID            string
	ScenarioID    string
	DocumentJSON  string // scenario as it was derived
	ResultsJSON   string
	ResolvedCount int
	Unresolved    []string // headline outputs left unknown
	CreatedAt     time.Time
}

// ScenarioStore persists scenarios and their run log.
type ScenarioStore interface {
	// SaveScenario inserts or replaces a scenario. CreatedAt is kept on replace.
	SaveScenario(ctx context.Context, sc ScenarioRecord) error

	// GetScenario returns nil, nil when the scenario does not exist.
	GetScenario(ctx context.Context, id string) (*ScenarioRecord, error)

	// ListScenarios returns all scenarios ordered by name, then ID.
	ListScenarios(ctx context.Context) ([]ScenarioRecord, error)

	// DeleteScenario removes a scenario and its runs.
	// Returns ErrScenarioNotFound if it does not exist.
	DeleteScenario(ctx context.Context, id string) error

	// AppendRun logs a derivation. The scenario must exist.
	AppendRun(ctx context.Context, run RunRecord) error

	// ListRuns returns up to limit runs of a scenario, newest first.
	ListRuns(ctx context.Context, scenarioID string, limit int) ([]RunRecord, error)

	// Reset clears all data.
	Reset(ctx context.Context) error
}
