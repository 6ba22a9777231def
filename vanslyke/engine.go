package vanslyke

import "github.com/warp/vanslyke/generic"

// =============================================================================
// RESULT SET - Immutable outcome of one derivation
// =============================================================================

// ResultSet maps every input and derived name to a quantity with provenance.
// Names that could not be resolved are present with provenance unknown.
type ResultSet struct {
	quantities map[Name]generic.Quantity
}

func newResultSet(qs ...generic.Quantity) ResultSet {
	m := make(map[Name]generic.Quantity, len(qs))
	for _, q := range qs {
		m[Name(q.Name)] = q
	}
	return ResultSet{quantities: m}
}

// Get returns the quantity for name. Names the engine does not produce come
// back unknown.
func (r ResultSet) Get(name Name) generic.Quantity {
	if q, ok := r.quantities[name]; ok {
		return q
	}
	return unknown(name)
}

// Value is shorthand for Get(name).Value.
func (r ResultSet) Value(name Name) generic.Scalar {
	return r.Get(name).Value
}

// Known reports whether name was entered or derived.
func (r ResultSet) Known(name Name) bool {
	return r.Get(name).Known()
}

// Quantities returns every quantity in display order.
func (r ResultSet) Quantities() []generic.Quantity {
	out := make([]generic.Quantity, 0, len(resultOrder))
	for _, n := range resultOrder {
		out = append(out, r.Get(n))
	}
	return out
}

// Equal reports whether both sets hold bit-identical quantities.
func (r ResultSet) Equal(other ResultSet) bool {
	for _, n := range resultOrder {
		if r.Get(n) != other.Get(n) {
			return false
		}
	}
	return true
}

// =============================================================================
// DERIVE - Fixed, non-repeating stages
// =============================================================================
//
// Each stage is a pure function of the snapshot and of earlier stages. A
// later stage never revises what an earlier stage fed forward, so the
// circular group (cheese casein, predicted pounds, yield, RS) is resolved in
// exactly two passes.

// Derive computes everything reachable from s.
func Derive(s Snapshot) (ResultSet, Diagnostics) {
	sub := substitute(s)
	dir := directStage(s, sub)
	rec := resolveRecovery(s, sub, dir)
	yld := yieldStage(s, sub, dir, rec)
	sec := secondPass(s, sub, dir, rec, yld)
	cls := closure(s, sub, rec.rf, sec.rs)

	results := newResultSet(
		entered(s, FatMilk),
		entered(s, ProteinMilk),
		sub.caseinMilk,
		entered(s, LbsMilk),
		entered(s, FatCheese),
		sub.tsCheese,
		entered(s, MoistureCheese),
		sec.caseinCheese,
		entered(s, ProteinCheese),
		entered(s, LbsCheese),
		entered(s, RC),
		rec.rf,
		sec.rs,
		generic.Entered(string(FDBTarget), s.Target(), FDBTarget.Unit()),
		dir.fdb,
		dir.rfFromPounds,
		rec.rfFromTarget,
		yld.predicted,
		yld.lbsPredicted,
		yld.actual,
		sec.rsFromActual,
		cls.fdbFromRecoveries,
		cls.caseinRequired,
		cls.ratioRequired,
	)
	return results, Diagnose(results)
}

// Stage 1: default milk casein and cheese total solids.
type substitution struct {
	caseinMilk generic.Quantity
	tsCheese   generic.Quantity
}

func substitute(s Snapshot) substitution {
	return substitution{
		caseinMilk: resolved(CaseinMilk,
			entered(s, CaseinMilk),
			derived(CaseinMilk, CaseinFromProtein(s.Get(ProteinMilk)))),
		tsCheese: resolved(TotalSolidsCheese,
			entered(s, TotalSolidsCheese),
			derived(TotalSolidsCheese, TotalSolidsFromMoisture(s.Get(MoistureCheese)))),
	}
}

// Stage 2: values computable straight from entries. rs is provisional and
// only uses an entered cheese casein.
type direct struct {
	fdb          generic.Quantity
	rfFromPounds generic.Quantity
	rs           generic.Quantity
}

func directStage(s Snapshot, sub substitution) direct {
	fatCheese := s.Get(FatCheese)
	ts := sub.tsCheese.Value
	return direct{
		fdb: derived(FDBFromCompositionOut, FDBFromComposition(fatCheese, ts)),
		rfFromPounds: derived(RFFromPoundsOut,
			RFFromPounds(fatCheese, s.Get(LbsCheese), s.Get(FatMilk), s.Get(LbsMilk))),
		rs: resolved(RS,
			entered(s, RS),
			derived(RS, RSFromComposition(fatCheese, s.Get(CaseinCheese), ts))),
	}
}

// Stage 3: entered RF wins over RF solved from the FDB target. RF from
// pounds is a cross-check and never becomes the resolved RF.
type recovery struct {
	rf           generic.Quantity
	rfFromTarget generic.Quantity
}

func resolveRecovery(s Snapshot, sub substitution, dir direct) recovery {
	fromTarget := derived(RFFromFDBTargetOut,
		RFFromFDBTarget(s.Target(), dir.rs.Value, s.Get(RC), s.Get(FatMilk), sub.caseinMilk.Value))
	return recovery{
		rf:           resolved(RF, entered(s, RF), fromTarget),
		rfFromTarget: fromTarget,
	}
}

// Stage 4: predicted and actual yield.
type yields struct {
	predicted    generic.Quantity
	lbsPredicted generic.Quantity
	actual       generic.Quantity
}

func yieldStage(s Snapshot, sub substitution, dir direct, rec recovery) yields {
	predicted := PredictedYield(rec.rf.Value, s.Get(RC), dir.rs.Value,
		s.Get(FatMilk), sub.caseinMilk.Value, sub.tsCheese.Value)
	return yields{
		predicted:    derived(YieldPredicted, predicted),
		lbsPredicted: derived(LbsCheesePredicted, PredictedCheesePounds(s.Get(LbsMilk), predicted)),
		actual:       derived(YieldActual, ActualYield(s.Get(LbsCheese), s.Get(LbsMilk))),
	}
}

// Stage 5: cheese casein from the milk casein balance, then RS again.
type second struct {
	caseinCheese generic.Quantity
	rs           generic.Quantity
	rsFromActual generic.Quantity
}

func secondPass(s Snapshot, sub substitution, dir direct, rec recovery, yld yields) second {
	out := second{
		caseinCheese: entered(s, CaseinCheese),
		rs:           dir.rs,
		rsFromActual: unknown(RSFromActualYieldOut),
	}

	if !out.caseinCheese.Known() {
		lbsCheese := s.Get(LbsCheese).Or(yld.lbsPredicted.Value)
		out.caseinCheese = derived(CaseinCheese,
			CheeseCaseinFromMilk(s.Get(RC), sub.caseinMilk.Value, s.Get(LbsMilk), lbsCheese))
		if out.rs.Provenance != generic.ProvenanceUserEntered {
			fromComposition := derived(RS,
				RSFromComposition(s.Get(FatCheese), out.caseinCheese.Value, sub.tsCheese.Value))
			out.rs = resolved(RS, fromComposition, out.rs)
		}
	}

	if !out.rs.Known() && yld.actual.Known() {
		rf := dir.rfFromPounds.Value.Or(rec.rf.Value)
		out.rsFromActual = derived(RSFromActualYieldOut,
			RSFromActualYield(yld.actual.Value, rf, s.Get(RC), s.Get(FatMilk), sub.caseinMilk.Value, sub.tsCheese.Value))
		out.rs = resolved(RS, out.rsFromActual)
	}
	return out
}

// Stage 6: closure with the final RF and RS.
type closed struct {
	fdbFromRecoveries generic.Quantity
	caseinRequired    generic.Quantity
	ratioRequired     generic.Quantity
}

func closure(s Snapshot, sub substitution, rf, rs generic.Quantity) closed {
	out := closed{
		fdbFromRecoveries: derived(FDBFromRecoveriesOut,
			FDBFromRecoveries(rf.Value, s.Get(RC), rs.Value, s.Get(FatMilk), sub.caseinMilk.Value)),
		caseinRequired: unknown(CaseinMilkRequired),
		ratioRequired:  unknown(CaseinFatRatioRequired),
	}
	if target := s.Target(); target.Known() {
		out.caseinRequired = derived(CaseinMilkRequired,
			RequiredMilkCasein(target, rs.Value, rf.Value, s.Get(RC), s.Get(FatMilk)))
		out.ratioRequired = derived(CaseinFatRatioRequired,
			RequiredCaseinFatRatio(target, rf.Value, s.Get(RC), rs.Value))
	}
	return out
}

// =============================================================================
// HELPERS
// =============================================================================

func entered(s Snapshot, name Name) generic.Quantity {
	return generic.Entered(string(name), s.Get(name), name.Unit())
}

func derived(name Name, v generic.Scalar) generic.Quantity {
	return generic.Derived(string(name), v, name.Unit())
}

func unknown(name Name) generic.Quantity {
	return generic.Derived(string(name), generic.Unknown, name.Unit())
}

// resolved returns the first known candidate under name, in precedence order.
func resolved(name Name, candidates ...generic.Quantity) generic.Quantity {
	for _, q := range candidates {
		if q.Known() {
			q.Name = string(name)
			return q
		}
	}
	return unknown(name)
}
