/*
Package vanslyke derives cheese-yield quantities from partial knowledge.

PURPOSE:
  Given any subset of milk composition, cheese composition, weights and
  recovery factors, Derive computes every quantity of the Van Slyke equation
  family that is algebraically reachable, picks between alternative
  derivation paths with fixed precedence, and explains what is missing.

COMPONENTS:
  - variables.go:   Names and units of every input and output
  - snapshot.go:    Immutable input bag
  - formulas.go:    Pure formula functions
  - registry.go:    Static catalogue of the formulas
  - engine.go:      Staged derivation (Derive)
  - diagnostics.go: Alternative requirement sets for unresolved outputs

CONVENTIONS:
  Percentages are on a 0-100 basis. RC, RF and RS are dimensionless.
  Weights are pounds. Nothing is converted.

SEE ALSO:
  - generic/types.go: Scalar and Quantity
*/
package vanslyke

import "github.com/warp/vanslyke/generic"

// Name identifies an input or derived quantity.
type Name string

// Inputs.
const (
	FatMilk           Name = "fat_milk"
	ProteinMilk       Name = "protein_milk"
	CaseinMilk        Name = "casein_milk"
	LbsMilk           Name = "lbs_milk"
	FatCheese         Name = "fat_cheese"
	TotalSolidsCheese Name = "total_solids_cheese"
	MoistureCheese    Name = "moisture_cheese"
	CaseinCheese      Name = "casein_cheese"
	ProteinCheese     Name = "protein_cheese"
	LbsCheese         Name = "lbs_cheese"
	RC                Name = "rc"
	RF                Name = "rf"
	RS                Name = "rs"
	FDBTarget         Name = "fdb_target"
)

// Derived outputs. RF, RS, CaseinMilk, CaseinCheese and TotalSolidsCheese
// double as resolved outputs.
const (
	FDBFromCompositionOut  Name = "fdb_from_composition"
	RFFromPoundsOut        Name = "rf_from_pounds"
	RFFromFDBTargetOut     Name = "rf_from_fdb_target"
	YieldPredicted         Name = "yield_predicted"
	LbsCheesePredicted     Name = "lbs_cheese_predicted"
	YieldActual            Name = "yield_actual"
	RSFromActualYieldOut   Name = "rs_from_actual_yield"
	CaseinMilkRequired     Name = "casein_milk_required"
	CaseinFatRatioRequired Name = "casein_fat_ratio_required"
	FDBFromRecoveriesOut   Name = "fdb_from_recoveries"
)

var units = map[Name]generic.Unit{
	FatMilk:           generic.UnitPercent,
	ProteinMilk:       generic.UnitPercent,
	CaseinMilk:        generic.UnitPercent,
	LbsMilk:           generic.UnitPounds,
	FatCheese:         generic.UnitPercent,
	TotalSolidsCheese: generic.UnitPercent,
	MoistureCheese:    generic.UnitPercent,
	CaseinCheese:      generic.UnitPercent,
	ProteinCheese:     generic.UnitPercent,
	LbsCheese:         generic.UnitPounds,
	RC:                generic.UnitRatio,
	RF:                generic.UnitRatio,
	RS:                generic.UnitRatio,
	FDBTarget:         generic.UnitPercent,

	FDBFromCompositionOut:  generic.UnitPercent,
	RFFromPoundsOut:        generic.UnitRatio,
	RFFromFDBTargetOut:     generic.UnitRatio,
	YieldPredicted:         generic.UnitPercent,
	LbsCheesePredicted:     generic.UnitPounds,
	YieldActual:            generic.UnitPercent,
	RSFromActualYieldOut:   generic.UnitRatio,
	CaseinMilkRequired:     generic.UnitPercent,
	CaseinFatRatioRequired: generic.UnitRatio,
	FDBFromRecoveriesOut:   generic.UnitPercent,
}

// Unit returns the fixed unit of a quantity.
func (n Name) Unit() generic.Unit {
	return units[n]
}

// IsInput reports whether n can be supplied in a Snapshot.
func (n Name) IsInput() bool {
	for _, in := range inputOrder {
		if in == n {
			return true
		}
	}
	return false
}

var inputOrder = []Name{
	FatMilk, ProteinMilk, CaseinMilk, LbsMilk,
	FatCheese, TotalSolidsCheese, MoistureCheese, CaseinCheese, ProteinCheese, LbsCheese,
	RC, RF, RS, FDBTarget,
}

// resultOrder is the order quantities appear in a ResultSet.
var resultOrder = []Name{
	FatMilk, ProteinMilk, CaseinMilk, LbsMilk,
	FatCheese, TotalSolidsCheese, MoistureCheese, CaseinCheese, ProteinCheese, LbsCheese,
	RC, RF, RS, FDBTarget,
	FDBFromCompositionOut, RFFromPoundsOut, RFFromFDBTargetOut,
	YieldPredicted, LbsCheesePredicted, YieldActual, RSFromActualYieldOut,
	FDBFromRecoveriesOut, CaseinMilkRequired, CaseinFatRatioRequired,
}

// Inputs lists every input name in display order.
func Inputs() []Name {
	return append([]Name(nil), inputOrder...)
}
