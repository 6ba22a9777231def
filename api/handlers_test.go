/*
handlers_test.go - Tests for API handlers

Tests for:
- Stateless derivation (POST /api/derive)
- Reference data (formulas, requirements)
- Saved scenarios and the run log
- Error status mapping
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	memstore "github.com/warp/vanslyke/generic/store"
	"github.com/warp/vanslyke/store/sqlite"
	"github.com/warp/vanslyke/vanslyke"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*Handler, http.Handler) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store)
	return h, NewRouter(h)
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func result(t *testing.T, dto DerivationDTO, name vanslyke.Name) QuantityDTO {
	t.Helper()
	for _, q := range dto.Results {
		if q.Name == string(name) {
			return q
		}
	}
	t.Fatalf("no result %s", name)
	return QuantityDTO{}
}

const cheddarDoc = `{
	"name": "Cheddar",
	"fat_milk": 3.7, "casein_milk": 2.6, "total_solids_cheese": 61,
	"rf": 0.93, "rc": 0.95, "rs": 1.09,
	"lbs_milk": 1000, "lbs_cheese": 100
}`

// =============================================================================
// DERIVATION
// =============================================================================

func TestDerive_VanSlykeScenario(t *testing.T) {
	// GIVEN: A document with the full Van Slyke inputs and weighed pounds
	_, router := newTestServer(t)

	// WHEN: It is derived
	rec := do(t, router, http.MethodPost, "/api/derive", cheddarDoc)

	// THEN: Predicted and actual yields are reported with provenance
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dto := decode[DerivationDTO](t, rec)

	yield := result(t, dto, vanslyke.YieldPredicted)
	require.NotNil(t, yield.Value)
	assert.InDelta(t, 10.5623, *yield.Value, 1e-4)
	assert.Equal(t, "10.56%", yield.Display)
	assert.Equal(t, "derived", yield.Provenance)

	actual := result(t, dto, vanslyke.YieldActual)
	require.NotNil(t, actual.Value)
	assert.InDelta(t, 10.0, *actual.Value, 1e-9)

	rf := result(t, dto, vanslyke.RF)
	assert.Equal(t, "user-entered", rf.Provenance)

	// Cheese fat was never given
	fdb := result(t, dto, vanslyke.FDBFromCompositionOut)
	assert.Nil(t, fdb.Value)
	assert.Equal(t, "unknown", fdb.Provenance)
	assert.Contains(t, dto.Unresolved, string(vanslyke.FDBFromCompositionOut))

	require.NotNil(t, dto.Scenario)
	assert.Equal(t, "Cheddar", dto.Scenario.Name)
}

func TestDerive_UnknownIsNullNotZero(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/derive", `{"fat_cheese": 25, "total_solids_cheese": 50}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw struct {
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))

	for _, q := range raw.Results {
		if q["name"] == string(vanslyke.YieldPredicted) {
			v, present := q["value"]
			assert.True(t, present)
			assert.Nil(t, v)
			assert.Equal(t, "—", q["display"])
		}
	}
}

func TestDerive_Diagnostics(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/derive", `{"fat_cheese": 25, "total_solids_cheese": 50}`)
	dto := decode[DerivationDTO](t, rec)

	var rf *DiagnosticDTO
	for i := range dto.Diagnostics {
		if dto.Diagnostics[i].Output == string(vanslyke.RF) {
			rf = &dto.Diagnostics[i]
		}
	}
	require.NotNil(t, rf)
	assert.False(t, rf.Resolved)
	require.Len(t, rf.Alternatives, 3)
	assert.Equal(t, []string{"rf"}, rf.Alternatives[0].Missing)
	assert.Equal(t, []string{"lbs_milk", "lbs_cheese", "fat_milk"}, rf.Alternatives[1].Missing)

	fdb := dto.Diagnostics[0]
	assert.Equal(t, string(vanslyke.FDBFromCompositionOut), fdb.Output)
	assert.True(t, fdb.Resolved)
	assert.Empty(t, fdb.Alternatives)
}

func TestDerive_BlockedAlternatives(t *testing.T) {
	// GIVEN: Total solids of zero, outside the FDB equation's domain
	_, router := newTestServer(t)

	// WHEN: It is derived
	rec := do(t, router, http.MethodPost, "/api/derive", `{"fat_cheese": 25, "total_solids_cheese": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	dto := decode[DerivationDTO](t, rec)

	// THEN: Both FDB alternatives are blocked, with a reason
	fdb := dto.Diagnostics[0]
	require.Equal(t, string(vanslyke.FDBFromCompositionOut), fdb.Output)
	assert.False(t, fdb.Resolved)
	require.Len(t, fdb.Alternatives, 2)
	assert.Empty(t, fdb.Alternatives[0].Missing)
	for _, alt := range fdb.Alternatives {
		assert.True(t, alt.Blocked, alt.Label)
		assert.NotEmpty(t, alt.Reason, alt.Label)
	}
	assert.Contains(t, rec.Body.String(), `"blocked":true`)
}

func TestDerive_RejectsBadDocuments(t *testing.T) {
	_, router := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"fat_milk": `},
		{"unknown field", `{"fat_milkk": 3.7}`},
		{"negative input", `{"lbs_milk": -1}`},
		{"wrong type", `{"fat_milk": "3.7"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/api/derive", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			errResp := decode[ErrorResponse](t, rec)
			assert.NotEmpty(t, errResp.Details)
		})
	}
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

func TestListFormulas(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodGet, "/api/formulas", "")
	require.Equal(t, http.StatusOK, rec.Code)

	formulas := decode[[]FormulaDTO](t, rec)
	assert.Len(t, formulas, len(vanslyke.Catalogue()))
	assert.Equal(t, string(vanslyke.FDBFromCompositionOut), formulas[0].Output)
}

func TestListRequirements(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodGet, "/api/requirements", "")
	require.Equal(t, http.StatusOK, rec.Code)

	reqs := decode[[]RequirementDTO](t, rec)
	require.Len(t, reqs, len(vanslyke.Headlines()))
	for i, output := range vanslyke.Headlines() {
		assert.Equal(t, string(output), reqs[i].Output)
		assert.NotEmpty(t, reqs[i].Alternatives)
	}
}

// =============================================================================
// SAVED SCENARIOS
// =============================================================================

func TestScenarioLifecycle(t *testing.T) {
	_, router := newTestServer(t)
	scenarioLifecycle(t, router)
}

func TestScenarioLifecycle_MemoryStore(t *testing.T) {
	scenarioLifecycle(t, NewRouter(NewHandler(memstore.NewMemory())))
}

func scenarioLifecycle(t *testing.T, router http.Handler) {
	// GIVEN: A saved scenario without an id
	rec := do(t, router, http.MethodPost, "/api/scenarios", cheddarDoc)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[ScenarioDTO](t, rec)
	require.NotEmpty(t, created.ID, "id is generated")
	assert.Equal(t, "Cheddar", created.Name)
	require.NotNil(t, created.Document.FatMilk)
	assert.Equal(t, 3.7, *created.Document.FatMilk)

	// WHEN: It is listed, fetched and derived twice
	list := decode[[]ScenarioDTO](t, do(t, router, http.MethodGet, "/api/scenarios", ""))
	require.Len(t, list, 1)

	got := do(t, router, http.MethodGet, "/api/scenarios/"+created.ID, "")
	require.Equal(t, http.StatusOK, got.Code)

	first := do(t, router, http.MethodPost, "/api/scenarios/"+created.ID+"/derive", "")
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	firstDTO := decode[DerivationDTO](t, first)
	assert.NotEmpty(t, firstDTO.RunID)

	second := do(t, router, http.MethodPost, "/api/scenarios/"+created.ID+"/derive", "")
	require.Equal(t, http.StatusOK, second.Code)
	secondDTO := decode[DerivationDTO](t, second)
	assert.Equal(t, firstDTO.Results, secondDTO.Results, "derivation is deterministic")

	// THEN: Both runs are logged
	runs := decode[[]RunDTO](t, do(t, router, http.MethodGet, "/api/scenarios/"+created.ID+"/runs", ""))
	require.Len(t, runs, 2)
	assert.Equal(t, created.ID, runs[0].ScenarioID)
	assert.Equal(t, len(vanslyke.Headlines())-len(firstDTO.Unresolved), runs[0].ResolvedCount)

	var logged []QuantityDTO
	require.NoError(t, json.Unmarshal(runs[0].Results, &logged))
	assert.Equal(t, firstDTO.Results, logged)

	limited := decode[[]RunDTO](t, do(t, router, http.MethodGet, "/api/scenarios/"+created.ID+"/runs?limit=1", ""))
	assert.Len(t, limited, 1)

	// AND: Deleting removes it
	del := do(t, router, http.MethodDelete, "/api/scenarios/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, del.Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/scenarios/"+created.ID, "").Code)
}

func TestScenarios_NotFound(t *testing.T) {
	_, router := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/scenarios/missing"},
		{http.MethodDelete, "/api/scenarios/missing"},
		{http.MethodPost, "/api/scenarios/missing/derive"},
		{http.MethodGet, "/api/scenarios/missing/runs"},
	} {
		rec := do(t, router, tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestCreateScenario_RejectsNegative(t *testing.T) {
	h, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/scenarios", `{"name": "bad", "rc": -0.9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	all, err := h.Store.ListScenarios(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	require.NoError(t, err)
	assert.Empty(t, all, "nothing saved")
}

func TestListRuns_InvalidLimit(t *testing.T) {
	_, router := newTestServer(t)

	rec := do(t, router, http.MethodPost, "/api/scenarios", `{"id": "s1", "name": "s1", "fat_milk": 3.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	bad := do(t, router, http.MethodGet, "/api/scenarios/s1/runs?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

// =============================================================================
// METRICS
// =============================================================================

func TestMetrics_CountsDerivations(t *testing.T) {
	_, router := newTestServer(t)

	do(t, router, http.MethodPost, "/api/derive", `{"fat_cheese": 25, "total_solids_cheese": 50}`)

	rec := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `vanslyke_derivations_total{source="inline"} 1`), body)
	assert.Contains(t, body, `vanslyke_unresolved_outputs_total{output="rf"} 1`)
	assert.NotContains(t, body, `vanslyke_unresolved_outputs_total{output="fdb_from_composition"}`)
}
