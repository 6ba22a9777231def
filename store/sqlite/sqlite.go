/*
Package sqlite provides a SQLite-backed store for saved scenarios.

PURPOSE:
  The engine itself keeps no state. This store sits beside the input layer:
  it keeps scenario documents operators want to come back to, and an
  append-only log of derivations run against them.

KEY TABLES:
  scenarios:       Saved scenario documents (JSON, see factory/scenario.go)
  derivation_runs: One row per derivation of a saved scenario

APPEND-ONLY RUNS:
  derivation_runs rows are never updated. Deleting a scenario deletes its
  runs through the foreign key.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. ":memory:" databases are pinned to a
  single connection so every query sees the same database.

USAGE:
  store, err := sqlite.New("./data/vanslyke.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - generic/store.go: ScenarioStore interface
  - factory/scenario.go: Document format stored in document_json
  - api/handlers.go: Uses this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/vanslyke/generic"
)

// Store implements generic.ScenarioStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ generic.ScenarioStore = (*Store)(nil)

// timestampLayout is fixed-width so that TEXT ordering matches time ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		document_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_name
		ON scenarios(name);

	-- Derivation runs (append-only)
	CREATE TABLE IF NOT EXISTS derivation_runs (
		id TEXT PRIMARY KEY,
		scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
		document_json TEXT NOT NULL,
		results_json TEXT NOT NULL,
		resolved_count INTEGER NOT NULL,
		unresolved_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_scenario_date
		ON derivation_runs(scenario_id, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCENARIO STORE
// =============================================================================

// SaveScenario inserts or replaces a scenario. created_at is kept on replace.
func (s *Store) SaveScenario(ctx context.Context, sc generic.ScenarioRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO scenarios (id, name, description, document_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			document_json = excluded.document_json,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(timestampLayout)
	_, err := s.db.ExecContext(ctx, query,
		sc.ID, sc.Name, sc.Description, sc.DocumentJSON, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save scenario %s: %w", sc.ID, err)
	}
	return nil
}

// GetScenario retrieves a scenario by ID. Returns nil if not found.
func (s *Store) GetScenario(ctx context.Context, id string) (*generic.ScenarioRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sc generic.ScenarioRecord
	var description sql.NullString
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, document_json, created_at, updated_at FROM scenarios WHERE id = ?",
		id,
	).Scan(&sc.ID, &sc.Name, &description, &sc.DocumentJSON, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sc.Description = description.String
	sc.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
	sc.UpdatedAt, _ = time.Parse(timestampLayout, updatedAt)
	return &sc, nil
}

// ListScenarios returns all scenarios ordered by name.
func (s *Store) ListScenarios(ctx context.Context) ([]generic.ScenarioRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, description, document_json, created_at, updated_at FROM scenarios ORDER BY name, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scenarios []generic.ScenarioRecord
	for rows.Next() {
		var sc generic.ScenarioRecord
		var description sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&sc.ID, &sc.Name, &description, &sc.DocumentJSON, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		sc.Description = description.String
		sc.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
		sc.UpdatedAt, _ = time.Parse(timestampLayout, updatedAt)
		scenarios = append(scenarios, sc)
	}
	return scenarios, rows.Err()
}

// DeleteScenario removes a scenario and its runs.
func (s *Store) DeleteScenario(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM scenarios WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", generic.ErrScenarioNotFound, id)
	}
	return nil
}

// =============================================================================
// RUN LOG
// =============================================================================

// AppendRun logs a derivation. The scenario must exist.
func (s *Store) AppendRun(ctx context.Context, run generic.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unresolved := run.Unresolved
	if unresolved == nil {
		unresolved = []string{}
	}
	unresolvedJSON, err := json.Marshal(unresolved)
	if err != nil {
		return err
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO derivation_runs (id, scenario_id, document_json, results_json, resolved_count, unresolved_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.ScenarioID, run.DocumentJSON, run.ResultsJSON, run.ResolvedCount,
		string(unresolvedJSON), createdAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to append run for %s: %w", run.ScenarioID, err)
	}
	return nil
}

// ListRuns returns the runs of a scenario, newest first.
func (s *Store) ListRuns(ctx context.Context, scenarioID string, limit int) ([]generic.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = generic.DefaultRunLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario_id, document_json, results_json, resolved_count, unresolved_json, created_at
		FROM derivation_runs
		WHERE scenario_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?`,
		scenarioID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []generic.RunRecord
	for rows.Next() {
		var r generic.RunRecord
		var unresolvedJSON, createdAt string
		if err := rows.Scan(&r.ID, &r.ScenarioID, &r.DocumentJSON, &r.ResultsJSON,
			&r.ResolvedCount, &unresolvedJSON, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(unresolvedJSON), &r.Unresolved); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		r.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"derivation_runs", "scenarios"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
