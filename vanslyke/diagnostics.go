package vanslyke

import "github.com/warp/vanslyke/generic"

// =============================================================================
// DIAGNOSTICS - What would unblock an unresolved output
// =============================================================================

// Requirement is one alternative set of quantities that can produce an output.
type Requirement struct {
	Label  string
	Inputs []Name
}

// Alternative is a Requirement checked against a ResultSet.
type Alternative struct {
	Requirement
	Missing []Name
	// Blocked is set when entering the missing quantities would not
	// resolve the output. Reason says why.
	Blocked bool
	Reason  string
}

// Diagnostic reports on one headline output.
type Diagnostic struct {
	Output       Name
	Resolved     bool
	Alternatives []Alternative // empty when Resolved
}

// Diagnostics lists every headline output in a fixed order.
type Diagnostics []Diagnostic

// Get returns the diagnostic for output.
func (d Diagnostics) Get(output Name) (Diagnostic, bool) {
	for _, diag := range d {
		if diag.Output == output {
			return diag, true
		}
	}
	return Diagnostic{}, false
}

// Unresolved returns only the headline outputs that are unknown.
func (d Diagnostics) Unresolved() Diagnostics {
	var out Diagnostics
	for _, diag := range d {
		if !diag.Resolved {
			out = append(out, diag)
		}
	}
	return out
}

const (
	labelFatMoisture  = "cheese fat and moisture"
	labelRFCrossCheck = "pounds of milk + pounds of cheese (fat balance, cross-check only)"
)

type headline struct {
	output       Name
	alternatives []Requirement
}

var headlines = []headline{
	{FDBFromCompositionOut, []Requirement{
		{"cheese composition", []Name{FatCheese, TotalSolidsCheese}},
		{labelFatMoisture, []Name{FatCheese, MoistureCheese}},
	}},
	{RC, []Requirement{
		{"enter RC", []Name{RC}},
	}},
	{RS, []Requirement{
		{"enter RS", []Name{RS}},
		{"cheese composition", []Name{FatCheese, CaseinCheese, TotalSolidsCheese}},
		{"casein balance from pounds", []Name{FatCheese, TotalSolidsCheese, RC, CaseinMilk, LbsMilk, LbsCheese}},
		{"actual yield", []Name{LbsMilk, LbsCheese, TotalSolidsCheese, RF, RC, FatMilk, CaseinMilk}},
	}},
	{RF, []Requirement{
		{"enter RF", []Name{RF}},
		{labelRFCrossCheck, []Name{LbsMilk, LbsCheese, FatMilk, FatCheese}},
		{"FDB target + RS + milk composition", []Name{FDBTarget, RS, RC, FatMilk, CaseinMilk}},
	}},
	{YieldPredicted, []Requirement{
		{"Van Slyke", []Name{FatMilk, CaseinMilk, TotalSolidsCheese, RC, RS, RF}},
	}},
	{LbsCheesePredicted, []Requirement{
		{"pounds of milk + predicted yield", []Name{LbsMilk, YieldPredicted}},
	}},
	{YieldActual, []Requirement{
		{"pounds of milk + pounds of cheese", []Name{LbsMilk, LbsCheese}},
	}},
	{CaseinCheese, []Requirement{
		{"enter cheese casein", []Name{CaseinCheese}},
		{"casein balance from actual pounds", []Name{RC, CaseinMilk, LbsMilk, LbsCheese}},
		{"casein balance from predicted pounds", []Name{RC, CaseinMilk, LbsMilk, LbsCheesePredicted}},
	}},
	{FDBFromRecoveriesOut, []Requirement{
		{"milk composition + recoveries", []Name{RF, RC, RS, FatMilk, CaseinMilk}},
	}},
	{CaseinMilkRequired, []Requirement{
		{"FDB target + recoveries + milk fat", []Name{FDBTarget, RS, RF, RC, FatMilk}},
	}},
	{CaseinFatRatioRequired, []Requirement{
		{"FDB target + recoveries", []Name{FDBTarget, RF, RC, RS}},
	}},
}

// supersededBy names, per alternative label, the input whose entered value
// takes precedence over that route.
var supersededBy = map[string]Name{
	labelFatMoisture: TotalSolidsCheese,
}

// crossChecks are alternatives reported for reference that never resolve
// their output.
var crossChecks = map[string]bool{
	labelRFCrossCheck: true,
}

// Requirements returns the static map of headline outputs to their
// alternative requirement sets.
func Requirements() map[Name][]Requirement {
	out := make(map[Name][]Requirement, len(headlines))
	for _, h := range headlines {
		reqs := make([]Requirement, len(h.alternatives))
		for i, r := range h.alternatives {
			reqs[i] = Requirement{Label: r.Label, Inputs: append([]Name(nil), r.Inputs...)}
		}
		out[h.output] = reqs
	}
	return out
}

// Headlines lists the headline outputs in report order.
func Headlines() []Name {
	out := make([]Name, len(headlines))
	for i, h := range headlines {
		out[i] = h.output
	}
	return out
}

// Diagnose checks every headline output against results. For an unknown
// output all alternatives are reported, each with the quantities it still
// lacks. Alternatives that cannot help as things stand are marked Blocked.
func Diagnose(results ResultSet) Diagnostics {
	out := make(Diagnostics, 0, len(headlines))
	for _, h := range headlines {
		d := Diagnostic{Output: h.output, Resolved: results.Known(h.output)}
		if !d.Resolved {
			for _, req := range h.alternatives {
				alt := Alternative{Requirement: Requirement{
					Label:  req.Label,
					Inputs: append([]Name(nil), req.Inputs...),
				}}
				for _, n := range req.Inputs {
					if !results.Known(n) {
						alt.Missing = append(alt.Missing, n)
					}
				}
				alt.Blocked, alt.Reason = blocked(results, req.Label, alt.Missing)
				d.Alternatives = append(d.Alternatives, alt)
			}
		}
		out = append(out, d)
	}
	return out
}

func blocked(results ResultSet, label string, missing []Name) (bool, string) {
	if crossChecks[label] {
		return true, "cross-check only, never resolves the output"
	}
	if over, ok := supersededBy[label]; ok && results.Get(over).Provenance == generic.ProvenanceUserEntered {
		return true, "entered " + string(over) + " takes precedence"
	}
	if len(missing) == 0 {
		return true, "known values are outside the equation's domain"
	}
	return false, ""
}
