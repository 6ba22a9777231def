/*
presets.go - Pre-built demo scenarios

PURPOSE:
  Ready-to-derive scenarios that show each derivation path of the engine.
  Used by the API (/api/presets) and the CLI (vanslyke derive --preset).

AVAILABLE PRESETS:
  cheddar-weighed:     Full Van Slyke inputs plus weighed milk and cheese
  composition-only:    Only cheese fat and total solids (most outputs unknown)
  fdb-target:          RF solved from a target FDB, round-tripped through closure
  protein-standardise: Casein from milk protein, moisture instead of total solids
  casein-balance:      RS from cheese casein derived through the milk casein balance

SEE ALSO:
  - scenario.go: Document format
*/
package factory

func f(v float64) *float64 { return &v }

// Presets returns the demo scenarios in display order.
func Presets() []ScenarioJSON {
	return []ScenarioJSON{
		{
			ID:                "cheddar-weighed",
			Name:              "Cheddar, weighed vat",
			Description:       "Recoveries entered, 1000 lbs milk made 100 lbs cheese",
			LbsMilk:           f(1000),
			LbsCheese:         f(100),
			RF:                f(0.93),
			RC:                f(0.95),
			RS:                f(1.09),
			FatMilk:           f(3.7),
			CaseinMilk:        f(2.6),
			TotalSolidsCheese: f(61),
		},
		{
			ID:                "composition-only",
			Name:              "Cheese composition only",
			Description:       "Only fat and total solids of the cheese are known",
			FatCheese:         f(25),
			TotalSolidsCheese: f(50),
		},
		{
			ID:           "fdb-target",
			Name:         "Hit a target FDB",
			Description:  "Solve RF and required milk casein for 52.7% FDB",
			RS:           f(1.10),
			RC:           f(0.95),
			FatMilk:      f(3.7),
			CaseinMilk:   f(2.5),
			UseFDBTarget: true,
			FDBTarget:    f(52.7),
		},
		{
			ID:             "protein-standardise",
			Name:           "Standardise from milk protein",
			Description:    "Casein estimated from protein, total solids from moisture",
			FatMilk:        f(3.6),
			ProteinMilk:    f(3.2),
			LbsMilk:        f(10000),
			FatCheese:      f(33),
			MoistureCheese: f(37),
			RC:             f(0.96),
			RF:             f(0.9),
			RS:             f(1.09),
			UseFDBTarget:   true,
			FDBTarget:      f(52),
		},
		{
			ID:             "casein-balance",
			Name:           "RS from the casein balance",
			Description:    "Cheese casein derived from weighed pounds, then RS from composition",
			FatMilk:        f(3.7),
			CaseinMilk:     f(2.5),
			LbsMilk:        f(1000),
			LbsCheese:      f(100),
			FatCheese:      f(33),
			MoistureCheese: f(37),
			RC:             f(0.96),
		},
	}
}

// Preset returns the preset with the given ID.
func Preset(id string) (ScenarioJSON, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return ScenarioJSON{}, false
}
