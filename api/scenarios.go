/*
scenarios.go - Demo preset handlers

PURPOSE:
  Lists the pre-built presets and copies them into the scenario store, so a
  fresh server has something to derive.

AVAILABLE PRESETS:
  See factory/presets.go.

USAGE VIA API:
  GET  /api/presets
  POST /api/presets/load
  {"ids": ["cheddar-weighed", "fdb-target"]}

  An empty body (or empty ids) loads every preset. Loading is an upsert keyed
  by preset ID: reloading overwrites the saved scenario but keeps its runs.

SEE ALSO:
  - handlers.go: Scenario handlers
  - factory/presets.go: Preset definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/warp/vanslyke/factory"
	"github.com/warp/vanslyke/generic"
)

// ListPresets returns the available presets.
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets := factory.Presets()
	dtos := make([]PresetDTO, len(presets))
	for i, p := range presets {
		dtos[i] = PresetDTO{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LoadPresets saves the selected presets as scenarios.
func (h *Handler) LoadPresets(w http.ResponseWriter, r *http.Request) {
	var req LoadPresetsRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	loaded, err := h.SeedPresets(r.Context(), req.IDs)
	if err != nil {
		if generic.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Unknown preset", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save preset", err)
		return
	}
	writeJSON(w, http.StatusOK, LoadPresetsResponse{Loaded: loaded})
}

// SeedPresets saves the presets with the given IDs, or all of them when ids
// is empty, and returns the saved scenario IDs.
func (h *Handler) SeedPresets(ctx context.Context, ids []string) ([]string, error) {
	var docs []factory.ScenarioJSON
	if len(ids) == 0 {
		docs = factory.Presets()
	}
	for _, id := range ids {
		doc, ok := factory.Preset(id)
		if !ok {
			return nil, fmt.Errorf("%w: preset %q", generic.ErrInvalidScenario, id)
		}
		docs = append(docs, doc)
	}

	loaded := []string{}
	for _, doc := range docs {
		scenario, err := h.Factory.Build(doc)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", doc.ID, err)
		}
		rec, err := h.saveScenario(ctx, *scenario)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, rec.ID)
	}
	return loaded, nil
}
