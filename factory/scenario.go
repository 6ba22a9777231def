/*
Package factory converts scenario documents into engine snapshots.

PURPOSE:
  Operators describe what they know about a make as a JSON or TOML document.
  The factory turns the document into a vanslyke.Snapshot, rejecting what the
  engine will not check itself: unknown fields and negative measurements.

WHY DOCUMENTS?
  - Any field may be absent; absent means unknown, never zero
  - Saved scenarios can be stored and replayed
  - The same format feeds the HTTP API and the CLI

JSON SCHEMA:
  {
    "id": "cheddar-weighed",
    "name": "Cheddar, weighed vat",
    "fat_milk": 3.7,
    "casein_milk": 2.6,
    "lbs_milk": 1000,
    "lbs_cheese": 100,
    "rc": 0.95,
    "use_fdb_target": true,
    "fdb_target": 52.7
  }

TOML uses the same keys:
  name = "Cheddar, weighed vat"
  fat_milk = 3.7
  use_fdb_target = true
  fdb_target = 52.7

USAGE:
  f := factory.NewScenarioFactory()
  scenario, err := f.ParseJSON(body)
  results, diags := vanslyke.Derive(scenario.Snapshot)

SEE ALSO:
  - vanslyke/snapshot.go: Snapshot and Validate
  - presets.go: Demo scenarios
*/
package factory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/warp/vanslyke/generic"
	"github.com/warp/vanslyke/vanslyke"
)

// =============================================================================
// DOCUMENT SCHEMA
// =============================================================================

// ScenarioJSON is the document form of a scenario. Nil means unknown.
type ScenarioJSON struct {
	ID          string `json:"id,omitempty" toml:"id,omitempty"`
	Name        string `json:"name,omitempty" toml:"name,omitempty"`
	Description string `json:"description,omitempty" toml:"description,omitempty"`

	// Milk
	FatMilk     *float64 `json:"fat_milk,omitempty" toml:"fat_milk,omitempty"`
	ProteinMilk *float64 `json:"protein_milk,omitempty" toml:"protein_milk,omitempty"`
	CaseinMilk  *float64 `json:"casein_milk,omitempty" toml:"casein_milk,omitempty"`
	LbsMilk     *float64 `json:"lbs_milk,omitempty" toml:"lbs_milk,omitempty"`

	// Cheese
	FatCheese         *float64 `json:"fat_cheese,omitempty" toml:"fat_cheese,omitempty"`
	TotalSolidsCheese *float64 `json:"total_solids_cheese,omitempty" toml:"total_solids_cheese,omitempty"`
	MoistureCheese    *float64 `json:"moisture_cheese,omitempty" toml:"moisture_cheese,omitempty"`
	CaseinCheese      *float64 `json:"casein_cheese,omitempty" toml:"casein_cheese,omitempty"`
	ProteinCheese     *float64 `json:"protein_cheese,omitempty" toml:"protein_cheese,omitempty"`
	LbsCheese         *float64 `json:"lbs_cheese,omitempty" toml:"lbs_cheese,omitempty"`

	// Recovery factors
	RC *float64 `json:"rc,omitempty" toml:"rc,omitempty"`
	RF *float64 `json:"rf,omitempty" toml:"rf,omitempty"`
	RS *float64 `json:"rs,omitempty" toml:"rs,omitempty"`

	// Target
	UseFDBTarget bool     `json:"use_fdb_target,omitempty" toml:"use_fdb_target,omitempty"`
	FDBTarget    *float64 `json:"fdb_target,omitempty" toml:"fdb_target,omitempty"`
}

func (j *ScenarioJSON) fields() map[vanslyke.Name]**float64 {
	return map[vanslyke.Name]**float64{
		vanslyke.FatMilk:           &j.FatMilk,
		vanslyke.ProteinMilk:       &j.ProteinMilk,
		vanslyke.CaseinMilk:        &j.CaseinMilk,
		vanslyke.LbsMilk:           &j.LbsMilk,
		vanslyke.FatCheese:         &j.FatCheese,
		vanslyke.TotalSolidsCheese: &j.TotalSolidsCheese,
		vanslyke.MoistureCheese:    &j.MoistureCheese,
		vanslyke.CaseinCheese:      &j.CaseinCheese,
		vanslyke.ProteinCheese:     &j.ProteinCheese,
		vanslyke.LbsCheese:         &j.LbsCheese,
		vanslyke.RC:                &j.RC,
		vanslyke.RF:                &j.RF,
		vanslyke.RS:                &j.RS,
		vanslyke.FDBTarget:         &j.FDBTarget,
	}
}

// Scenario is a validated, named snapshot.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Snapshot    vanslyke.Snapshot
}

// =============================================================================
// FACTORY
// =============================================================================

// ScenarioFactory creates scenarios from documents.
type ScenarioFactory struct{}

// NewScenarioFactory creates a new factory.
func NewScenarioFactory() *ScenarioFactory {
	return &ScenarioFactory{}
}

// ParseJSON parses a JSON document. Unknown fields are rejected.
func (f *ScenarioFactory) ParseJSON(data []byte) (*Scenario, error) {
	var doc ScenarioJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", generic.ErrInvalidScenario, err)
	}
	return f.Build(doc)
}

// ParseTOML parses a TOML document. Unknown keys are rejected.
func (f *ScenarioFactory) ParseTOML(data []byte) (*Scenario, error) {
	var doc ScenarioJSON
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generic.ErrInvalidScenario, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", generic.ErrInvalidScenario, strings.Join(keys, ", "))
	}
	return f.Build(doc)
}

// ParseFile reads a .json or .toml scenario file.
func (f *ScenarioFactory) ParseFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var scenario *Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		scenario, err = f.ParseJSON(data)
	case ".toml":
		scenario, err = f.ParseTOML(data)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q", generic.ErrInvalidScenario, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// Build converts a decoded document into a validated scenario.
func (f *ScenarioFactory) Build(doc ScenarioJSON) (*Scenario, error) {
	s := vanslyke.NewSnapshot()
	if doc.UseFDBTarget {
		s = s.WithFDBTargetFlag()
	}
	fields := doc.fields()
	for _, name := range vanslyke.Inputs() {
		if p := *fields[name]; p != nil {
			s = s.With(name, *p)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &Scenario{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Snapshot:    s,
	}, nil
}

// ToJSON is the inverse of Build.
func (f *ScenarioFactory) ToJSON(sc Scenario) ScenarioJSON {
	doc := ScenarioJSON{
		ID:           sc.ID,
		Name:         sc.Name,
		Description:  sc.Description,
		UseFDBTarget: sc.Snapshot.UseFDBTarget(),
	}
	fields := doc.fields()
	for _, name := range sc.Snapshot.Names() {
		if field, ok := fields[name]; ok {
			*field = sc.Snapshot.Get(name).Ptr()
		}
	}
	return doc
}

// Encode renders a scenario as a JSON document.
func (f *ScenarioFactory) Encode(sc Scenario) (string, error) {
	data, err := json.Marshal(f.ToJSON(sc))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
