package vanslyke_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vanslyke/vanslyke"
)

func labels(d vanslyke.Diagnostic) []string {
	out := make([]string, len(d.Alternatives))
	for i, a := range d.Alternatives {
		out[i] = a.Label
	}
	return out
}

func TestDiagnose_OnlyCheeseComposition(t *testing.T) {
	// GIVEN: only cheese fat and total solids
	// WHEN: deriving
	// THEN: FDB resolves; RF, RS and yield don't, and RF lists every alternative

	results, diags := vanslyke.Derive(snapshot(map[vanslyke.Name]float64{
		vanslyke.FatCheese:         25,
		vanslyke.TotalSolidsCheese: 50,
	}))

	assert.Equal(t, 50.0, value(t, results, vanslyke.FDBFromCompositionOut))
	for _, n := range []vanslyke.Name{vanslyke.RF, vanslyke.RS, vanslyke.YieldPredicted, vanslyke.YieldActual} {
		assert.False(t, results.Known(n), n)
	}

	fdb, ok := diags.Get(vanslyke.FDBFromCompositionOut)
	require.True(t, ok)
	assert.True(t, fdb.Resolved)

	rf, ok := diags.Get(vanslyke.RF)
	require.True(t, ok)
	assert.False(t, rf.Resolved)
	require.Len(t, rf.Alternatives, 3)
	assert.Contains(t, labels(rf)[1], "pounds of milk + pounds of cheese")
	assert.Equal(t, "FDB target + RS + milk composition", labels(rf)[2])

	pounds := rf.Alternatives[1]
	assert.ElementsMatch(t, []vanslyke.Name{vanslyke.LbsMilk, vanslyke.LbsCheese, vanslyke.FatMilk}, pounds.Missing,
		"cheese fat is already known")
	target := rf.Alternatives[2]
	assert.Contains(t, target.Missing, vanslyke.FDBTarget)
	assert.Contains(t, target.Missing, vanslyke.RS)
}

func TestDiagnose_ReportsEveryAlternative(t *testing.T) {
	_, diags := vanslyke.Derive(vanslyke.NewSnapshot())
	reqs := vanslyke.Requirements()

	for _, d := range diags {
		assert.False(t, d.Resolved, d.Output)
		want := reqs[d.Output]
		require.Len(t, d.Alternatives, len(want), d.Output)
		for i, alt := range d.Alternatives {
			assert.Equal(t, want[i].Label, alt.Label)
			assert.Equal(t, want[i].Inputs, alt.Missing, "nothing is known")
		}
	}
}

func TestDiagnose_OrderIsFixed(t *testing.T) {
	_, diags := vanslyke.Derive(vanSlykeScenario())

	got := make([]vanslyke.Name, len(diags))
	for i, d := range diags {
		got[i] = d.Output
	}
	assert.Equal(t, vanslyke.Headlines(), got)
}

func TestDiagnose_UnresolvedFilter(t *testing.T) {
	_, diags := vanslyke.Derive(vanSlykeScenario())

	for _, d := range diags.Unresolved() {
		assert.False(t, d.Resolved)
		assert.NotEmpty(t, d.Alternatives)
	}
	_, ok := diags.Unresolved().Get(vanslyke.YieldActual)
	assert.False(t, ok, "actual yield is resolved")
}

func TestRequirements_IsACopy(t *testing.T) {
	reqs := vanslyke.Requirements()
	reqs[vanslyke.RF][0].Inputs[0] = "mutated"
	assert.Equal(t, vanslyke.RF, vanslyke.Requirements()[vanslyke.RF][0].Inputs[0])
}

func TestDiagnose_DomainFailureIsBlocked(t *testing.T) {
	// GIVEN: cheese fat with zero total solids
	// WHEN: deriving
	// THEN: FDB is unknown, the composition route is blocked rather than
	// missing nothing, and moisture is not offered since entered TS wins

	results, diags := vanslyke.Derive(snapshot(map[vanslyke.Name]float64{
		vanslyke.FatCheese:         25,
		vanslyke.TotalSolidsCheese: 0,
	}))
	assert.False(t, results.Known(vanslyke.FDBFromCompositionOut))

	fdb, ok := diags.Get(vanslyke.FDBFromCompositionOut)
	require.True(t, ok)
	assert.False(t, fdb.Resolved)
	require.Len(t, fdb.Alternatives, 2)

	composition := fdb.Alternatives[0]
	assert.Empty(t, composition.Missing)
	assert.True(t, composition.Blocked)
	assert.Contains(t, composition.Reason, "domain")

	moisture := fdb.Alternatives[1]
	assert.Equal(t, []vanslyke.Name{vanslyke.MoistureCheese}, moisture.Missing)
	assert.True(t, moisture.Blocked)
	assert.Contains(t, moisture.Reason, "total_solids_cheese")
}

func TestDiagnose_MoistureRouteOpenWithoutTotalSolids(t *testing.T) {
	_, diags := vanslyke.Derive(snapshot(map[vanslyke.Name]float64{
		vanslyke.FatCheese: 25,
	}))

	fdb, ok := diags.Get(vanslyke.FDBFromCompositionOut)
	require.True(t, ok)
	for _, alt := range fdb.Alternatives {
		assert.False(t, alt.Blocked, alt.Label)
		assert.Empty(t, alt.Reason, alt.Label)
	}
}

func TestDiagnose_CrossCheckIsBlocked(t *testing.T) {
	_, diags := vanslyke.Derive(snapshot(map[vanslyke.Name]float64{
		vanslyke.LbsMilk:   1000,
		vanslyke.LbsCheese: 100,
		vanslyke.FatMilk:   3.7,
		vanslyke.FatCheese: 33,
	}))

	rf, ok := diags.Get(vanslyke.RF)
	require.True(t, ok)
	require.False(t, rf.Resolved)

	pounds := rf.Alternatives[1]
	assert.Empty(t, pounds.Missing)
	assert.True(t, pounds.Blocked)
	assert.Contains(t, pounds.Reason, "cross-check")
	assert.False(t, rf.Alternatives[0].Blocked, "entering RF still resolves it")
}
