/*
handlers.go - HTTP API handlers for the derivation engine

PURPOSE:
  Exposes the Van Slyke engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the factory and the engine.

ENDPOINTS:
  Derivation:
    POST   /api/derive                  Derive from a scenario document
    GET    /api/formulas                Formula catalogue
    GET    /api/requirements            What each headline output needs

  Saved scenarios:
    GET    /api/scenarios               List saved scenarios
    POST   /api/scenarios               Save a scenario document
    GET    /api/scenarios/{id}          Get a saved scenario
    DELETE /api/scenarios/{id}          Delete a scenario and its runs
    POST   /api/scenarios/{id}/derive   Derive a saved scenario, log the run
    GET    /api/scenarios/{id}/runs     Run history, newest first

  Presets:
    GET    /api/presets                 List demo presets
    POST   /api/presets/load            Save presets as scenarios

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Saved scenarios and run log
  - Factory: Document to Snapshot conversion
  - Metrics: Prometheus collectors

REQUEST FLOW:
  1. Parse HTTP request
  2. Build a validated Snapshot (factory)
  3. vanslyke.Derive
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid document, unknown field, negative input
  - 404: Scenario not found
  - 500: Store errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Preset handlers
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/vanslyke/factory"
	"github.com/warp/vanslyke/generic"
	"github.com/warp/vanslyke/vanslyke"
)

// maxBodyBytes bounds request bodies; scenario documents are small.
const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   generic.ScenarioStore
	Factory *factory.ScenarioFactory
	Metrics *Metrics
}

// NewHandler creates a new handler with the given store.
func NewHandler(store generic.ScenarioStore) *Handler {
	return &Handler{
		Store:   store,
		Factory: factory.NewScenarioFactory(),
		Metrics: NewMetrics(),
	}
}

// =============================================================================
// DERIVATION HANDLERS
// =============================================================================

// Derive runs the engine on the scenario document in the request body.
func (h *Handler) Derive(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.parseBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scenario", err)
		return
	}

	results, diags := vanslyke.Derive(scenario.Snapshot)
	h.Metrics.Observe("inline", diags)

	dto := NewDerivationDTO(results, diags)
	doc := h.Factory.ToJSON(*scenario)
	dto.Scenario = &doc
	writeJSON(w, http.StatusOK, dto)
}

// ListFormulas returns the formula catalogue.
func (h *Handler) ListFormulas(w http.ResponseWriter, r *http.Request) {
	catalogue := vanslyke.Catalogue()
	dtos := make([]FormulaDTO, len(catalogue))
	for i, f := range catalogue {
		dtos[i] = FormulaDTO{
			Output:     string(f.Output),
			Expression: f.Expression,
			Requires:   names(f.Requires),
			Guard:      f.Guard,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListRequirements returns the requirement sets of every headline output,
// in report order.
func (h *Handler) ListRequirements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, requirementDTOs())
}

func requirementDTOs() []RequirementDTO {
	reqs := vanslyke.Requirements()
	var dtos []RequirementDTO
	for _, output := range vanslyke.Headlines() {
		dto := RequirementDTO{Output: string(output)}
		for _, req := range reqs[output] {
			dto.Alternatives = append(dto.Alternatives, RequirementSetDTO{
				Label:  req.Label,
				Inputs: names(req.Inputs),
			})
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns all saved scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.ListScenarios(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scenarios", err)
		return
	}

	dtos := make([]ScenarioDTO, 0, len(records))
	for _, rec := range records {
		dto, err := toScenarioDTO(rec)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Corrupt scenario", err)
			return
		}
		dtos = append(dtos, dto)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateScenario validates and saves a scenario document. A missing id is
// generated.
func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	scenario, err := h.parseBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scenario", err)
		return
	}

	rec, err := h.saveScenario(r.Context(), *scenario)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save scenario", err)
		return
	}

	dto, err := toScenarioDTO(*rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt scenario", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// GetScenario returns one saved scenario.
func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadScenario(w, r)
	if !ok {
		return
	}
	dto, err := toScenarioDTO(*rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Corrupt scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// DeleteScenario removes a scenario and its run log.
func (h *Handler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteScenario(r.Context(), id); err != nil {
		if generic.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Scenario not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete scenario", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeriveScenario derives a saved scenario and appends the run to its log.
func (h *Handler) DeriveScenario(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadScenario(w, r)
	if !ok {
		return
	}

	scenario, err := h.Factory.ParseJSON([]byte(rec.DocumentJSON))
	if err != nil {
		// Documents are validated on save; this is a stored-data problem.
		writeError(w, http.StatusInternalServerError, "Corrupt scenario", err)
		return
	}

	results, diags := vanslyke.Derive(scenario.Snapshot)
	h.Metrics.Observe("scenario", diags)
	dto := NewDerivationDTO(results, diags)

	resultsJSON, err := json.Marshal(dto.Results)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode results", err)
		return
	}

	run := generic.RunRecord{
		ID:            uuid.NewString(),
		ScenarioID:    rec.ID,
		DocumentJSON:  rec.DocumentJSON,
		ResultsJSON:   string(resultsJSON),
		ResolvedCount: len(diags) - len(dto.Unresolved),
		Unresolved:    dto.Unresolved,
		CreatedAt:     time.Now(),
	}
	if err := h.Store.AppendRun(r.Context(), run); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to log run", err)
		return
	}

	doc := h.Factory.ToJSON(*scenario)
	dto.Scenario = &doc
	dto.RunID = run.ID
	writeJSON(w, http.StatusOK, dto)
}

// ListRuns returns the run log of a scenario. Optional ?limit=N.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadScenario(w, r)
	if !ok {
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", fmt.Errorf("limit %q", s))
			return
		}
		limit = n
	}

	runs, err := h.Store.ListRuns(r.Context(), rec.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = RunDTO{
			ID:            run.ID,
			ScenarioID:    run.ScenarioID,
			ResolvedCount: run.ResolvedCount,
			Unresolved:    run.Unresolved,
			Results:       json.RawMessage(run.ResultsJSON),
			CreatedAt:     run.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) parseBody(r *http.Request) (*factory.Scenario, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return h.Factory.ParseJSON(body)
}

// loadScenario fetches the {id} scenario, writing the error response itself
// when it returns false.
func (h *Handler) loadScenario(w http.ResponseWriter, r *http.Request) (*generic.ScenarioRecord, bool) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.GetScenario(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return nil, false
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "Scenario not found",
			fmt.Errorf("%w: %s", generic.ErrScenarioNotFound, id))
		return nil, false
	}
	return rec, true
}

func (h *Handler) saveScenario(ctx context.Context, scenario factory.Scenario) (*generic.ScenarioRecord, error) {
	if scenario.ID == "" {
		scenario.ID = uuid.NewString()
	}
	if scenario.Name == "" {
		scenario.Name = scenario.ID
	}
	doc, err := h.Factory.Encode(scenario)
	if err != nil {
		return nil, err
	}

	rec := generic.ScenarioRecord{
		ID:           scenario.ID,
		Name:         scenario.Name,
		Description:  scenario.Description,
		DocumentJSON: doc,
	}
	if err := h.Store.SaveScenario(ctx, rec); err != nil {
		return nil, err
	}
	saved, err := h.Store.GetScenario(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, fmt.Errorf("%w: %s", generic.ErrScenarioNotFound, rec.ID)
	}
	return saved, nil
}

func toScenarioDTO(rec generic.ScenarioRecord) (ScenarioDTO, error) {
	var doc factory.ScenarioJSON
	if err := json.Unmarshal([]byte(rec.DocumentJSON), &doc); err != nil {
		return ScenarioDTO{}, fmt.Errorf("scenario %s: %w", rec.ID, err)
	}
	return ScenarioDTO{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Document:    doc,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
