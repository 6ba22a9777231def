// Package storetest checks that a generic.ScenarioStore behaves like the
// others. Each implementation's tests call Run.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vanslyke/generic"
)

// Run exercises store behaviour against fresh stores from newStore.
func Run(t *testing.T, newStore func(t *testing.T) generic.ScenarioStore) {
	t.Run("SaveAndGet", func(t *testing.T) { testSaveAndGet(t, newStore(t)) })
	t.Run("SaveUpserts", func(t *testing.T) { testSaveUpserts(t, newStore(t)) })
	t.Run("ListOrdered", func(t *testing.T) { testListOrdered(t, newStore(t)) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newStore(t)) })
	t.Run("RunsNewestFirst", func(t *testing.T) { testRunsNewestFirst(t, newStore(t)) })
	t.Run("RunsSubSecondOrder", func(t *testing.T) { testRunsSubSecondOrder(t, newStore(t)) })
	t.Run("RunRequiresScenario", func(t *testing.T) { testRunRequiresScenario(t, newStore(t)) })
	t.Run("Reset", func(t *testing.T) { testReset(t, newStore(t)) })
}

func cheddar() generic.ScenarioRecord {
	return generic.ScenarioRecord{
		ID:           "sc-1",
		Name:         "Cheddar",
		Description:  "weighed vat",
		DocumentJSON: `{"name":"Cheddar","lbs_milk":1000,"lbs_cheese":100}`,
	}
}

func run(id string, at time.Time) generic.RunRecord {
	return generic.RunRecord{
		ID:           id,
		ScenarioID:   "sc-1",
		DocumentJSON: "{}",
		ResultsJSON:  "[]",
		Unresolved:   []string{"rf", "rs"},
		CreatedAt:    at,
	}
}

func testSaveAndGet(t *testing.T, store generic.ScenarioStore) {
	ctx := context.Background()
	require.NoError(t, store.SaveScenario(ctx, cheddar()))

	got, err := store.GetScenario(ctx, "sc-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Cheddar", got.Name)
	assert.Equal(t, "weighed vat", got.Description)
	assert.Equal(t, cheddar().DocumentJSON, got.DocumentJSON)
	assert.False(t, got.CreatedAt.IsZero())

	missing, err := store.GetScenario(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testSaveUpserts(t *testing.T, store generic.ScenarioStore) {
	ctx := context.Background()
	require.NoError(t, store.SaveScenario(ctx, cheddar()))
	first, err := store.GetScenario(ctx, "sc-1")
	require.NoError(t, err)

	updated := cheddar()
	updated.Name = "Cheddar v2"
	require.NoError(t, store.SaveScenario(ctx, updated))

	all, err := store.ListScenarios(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Cheddar v2", all[0].Name)
	assert.True(t, first.CreatedAt.Equal(all[0].CreatedAt), "created_at kept on replace")
}

func testListOrdered(t *testing.T, store generic.ScenarioStore) {
	ctx := context.Background()
	for _, sc := range []generic.ScenarioRecord{
		{ID: "c", Name: "Gouda", DocumentJSON: "{}"},
		{ID: "b", Name: "Cheddar", DocumentJSON: "{}"},
		{ID: "a", Name: "Gouda", DocumentJSON: "{}"},
	} {
		require.NoError(t, store.SaveScenario(ctx, sc))
	}

	all, err := store.ListScenarios(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{all[0].ID, all[1].ID, all[2].ID})
}

func testDelete(t *testing.T, store generic.ScenarioStore) {
	ctx := context.Background()
	require.NoError(t, store.SaveScenario(ctx, cheddar()))
	require.NoError(t, store.AppendRun(ctx, run("run-1", time.Now())))

	require.NoError(t, store.DeleteScenario(ctx, "sc-1"))

	runs, err := store.ListRuns(ctx, "sc-1", 0)
	require.NoError(t, err)
	assert.Empty(t, runs, "runs go with the scenario")

	err = store.DeleteScenario(ctx, "sc-1")
	assert.ErrorIs(t, err, generic.ErrScenarioNotFound)
	assert.True(t, generic.IsNotFound(err))
}

func testRunsNewestFirst(t *testing.T, store generic.ScenarioStore) {
	ctx := context.Background()
	require.NoError(t, store.SaveScenario(ctx, cheddar()))

	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		r := run(id, base.Add(time.Duration(i)*time.Minute))
		r.ResolvedCount = i
		require.NoError(t, store.AppendRun(ctx, r))
	}

	runs, err := store.ListRuns(ctx, "sc-1", 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-c", runs[0].ID)
	assert.Equal(t, "run-b", runs[1].ID)
	assert.Equal(t, []string{"rf", "rs"}, runs[0].Unresolved)
	assert.Equal(t, 2, runs[0].ResolvedCount)
	assert.True(t, runs[0].CreatedAt.Equal(base.Add(2*time.Minute)))
}

func testRunsSubSecondOrder(t *testing.T, store generic.ScenarioStore) {
	ctx := context.Background()
	require.NoError(t, store.SaveScenario(ctx, cheddar()))

	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendRun(ctx, run("whole", base)))
	require.NoError(t, store.AppendRun(ctx, run("half", base.Add(500*time.Millisecond))))

	runs, err := store.ListRuns(ctx, "sc-1", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "half", runs[0].ID)
}

func testRunRequiresScenario(t *testing.T, store generic.ScenarioStore) {
	err := store.AppendRun(context.Background(), generic.RunRecord{
		ID: "run-1", ScenarioID: "missing", DocumentJSON: "{}", ResultsJSON: "[]",
	})
	assert.Error(t, err)
}

func testReset(t *testing.T, store generic.ScenarioStore) {
	ctx := context.Background()
	require.NoError(t, store.SaveScenario(ctx, cheddar()))

	require.NoError(t, store.Reset(ctx))

	all, err := store.ListScenarios(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
