/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's types from the external API contract: Scalars become nullable
  numbers, Names become strings.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

UNKNOWN VALUES:
  An unknown quantity is sent as "value": null with provenance "unknown".
  It is never sent as 0.

TYPES:
  Derivation:
    QuantityDTO, DiagnosticDTO, DerivationDTO

  Reference:
    FormulaDTO, RequirementDTO

  Scenarios:
    ScenarioDTO, RunDTO, PresetDTO, LoadPresetsRequest

SEE ALSO:
  - handlers.go: Uses these types
  - factory/scenario.go: ScenarioJSON document type
*/
package api

import (
	"encoding/json"

	"github.com/warp/vanslyke/factory"
	"github.com/warp/vanslyke/generic"
	"github.com/warp/vanslyke/vanslyke"
)

// =============================================================================
// DERIVATION
// =============================================================================

// QuantityDTO is one result with its display form and provenance.
type QuantityDTO struct {
	Name       string   `json:"name"`
	Value      *float64 `json:"value"`
	Display    string   `json:"display"`
	Unit       string   `json:"unit"`
	Provenance string   `json:"provenance"`
}

// AlternativeDTO is one requirement set and what it still lacks.
type AlternativeDTO struct {
	Label   string   `json:"label"`
	Inputs  []string `json:"inputs"`
	Missing []string `json:"missing"`
	Blocked bool     `json:"blocked"`
	Reason  string   `json:"reason,omitempty"`
}

// DiagnosticDTO reports on one headline output.
type DiagnosticDTO struct {
	Output       string           `json:"output"`
	Resolved     bool             `json:"resolved"`
	Alternatives []AlternativeDTO `json:"alternatives,omitempty"`
}

// DerivationDTO is the response of a derivation.
type DerivationDTO struct {
	Scenario    *factory.ScenarioJSON `json:"scenario,omitempty"`
	Results     []QuantityDTO         `json:"results"`
	Diagnostics []DiagnosticDTO       `json:"diagnostics"`
	Unresolved  []string              `json:"unresolved"`
	RunID       string                `json:"run_id,omitempty"`
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

// FormulaDTO is one catalogue entry.
type FormulaDTO struct {
	Output     string   `json:"output"`
	Expression string   `json:"expression"`
	Requires   []string `json:"requires"`
	Guard      string   `json:"guard,omitempty"`
}

// RequirementDTO lists the ways a headline output can be obtained.
type RequirementDTO struct {
	Output       string              `json:"output"`
	Alternatives []RequirementSetDTO `json:"alternatives"`
}

// RequirementSetDTO is one alternative set of inputs.
type RequirementSetDTO struct {
	Label  string   `json:"label"`
	Inputs []string `json:"inputs"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO represents a saved scenario in API responses.
type ScenarioDTO struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Document    factory.ScenarioJSON `json:"document"`
	CreatedAt   string               `json:"created_at,omitempty"`
	UpdatedAt   string               `json:"updated_at,omitempty"`
}

// RunDTO represents one logged derivation.
type RunDTO struct {
	ID            string          `json:"id"`
	ScenarioID    string          `json:"scenario_id"`
	ResolvedCount int             `json:"resolved_count"`
	Unresolved    []string        `json:"unresolved"`
	Results       json.RawMessage `json:"results"`
	CreatedAt     string          `json:"created_at"`
}

// PresetDTO describes a demo scenario.
type PresetDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadPresetsRequest selects presets to copy into the store. Empty loads all.
type LoadPresetsRequest struct {
	IDs []string `json:"ids,omitempty"`
}

// LoadPresetsResponse lists the saved scenario IDs.
type LoadPresetsResponse struct {
	Loaded []string `json:"loaded"`
}

// ErrorResponse is returned for all error statuses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

// NewQuantityDTO converts a result quantity.
func NewQuantityDTO(q generic.Quantity) QuantityDTO {
	return QuantityDTO{
		Name:       q.Name,
		Value:      q.Value.Ptr(),
		Display:    q.Display(),
		Unit:       string(q.Unit),
		Provenance: string(q.Provenance),
	}
}

// NewDerivationDTO converts the engine's output.
func NewDerivationDTO(results vanslyke.ResultSet, diags vanslyke.Diagnostics) DerivationDTO {
	qs := results.Quantities()
	dto := DerivationDTO{
		Results:     make([]QuantityDTO, len(qs)),
		Diagnostics: make([]DiagnosticDTO, len(diags)),
		Unresolved:  unresolvedNames(diags),
	}
	for i, q := range qs {
		dto.Results[i] = NewQuantityDTO(q)
	}
	for i, d := range diags {
		dd := DiagnosticDTO{Output: string(d.Output), Resolved: d.Resolved}
		for _, alt := range d.Alternatives {
			dd.Alternatives = append(dd.Alternatives, AlternativeDTO{
				Label:   alt.Label,
				Inputs:  names(alt.Inputs),
				Missing: names(alt.Missing),
				Blocked: alt.Blocked,
				Reason:  alt.Reason,
			})
		}
		dto.Diagnostics[i] = dd
	}
	return dto
}

func unresolvedNames(diags vanslyke.Diagnostics) []string {
	out := []string{}
	for _, d := range diags.Unresolved() {
		out = append(out, string(d.Output))
	}
	return out
}

func names(ns []vanslyke.Name) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = string(n)
	}
	return out
}
