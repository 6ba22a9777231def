package vanslyke

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/vanslyke/generic"
)

func TestSecondPass_PrefersRFFromPounds(t *testing.T) {
	// GIVEN: RS unknown after composition, actual yield known, both RF values known
	// WHEN: RS is solved from the actual yield
	// THEN: RF from pounds is used, not the resolved RF

	s := NewSnapshot().
		With(RC, 0.95).
		With(FatMilk, 3.7).
		With(TotalSolidsCheese, 61)
	sub := substitution{
		caseinMilk: derived(CaseinMilk, generic.Of(2.6)),
		tsCheese:   entered(s, TotalSolidsCheese),
	}
	dir := direct{
		fdb:          unknown(FDBFromCompositionOut),
		rfFromPounds: derived(RFFromPoundsOut, generic.Of(0.88)),
		rs:           unknown(RS),
	}
	rec := recovery{rf: generic.Entered(string(RF), generic.Of(0.93), RF.Unit()), rfFromTarget: unknown(RFFromFDBTargetOut)}
	yld := yields{
		predicted:    unknown(YieldPredicted),
		lbsPredicted: unknown(LbsCheesePredicted),
		actual:       derived(YieldActual, generic.Of(10)),
	}

	got := secondPass(s, sub, dir, rec, yld)

	want := 10 * 0.61 / (0.88*3.7 + 0.95*2.6)
	v, ok := got.rs.Value.Get()
	assert.True(t, ok)
	assert.InDelta(t, want, v, 1e-12)
	assert.Equal(t, got.rs.Value, got.rsFromActual.Value)
	assert.Equal(t, string(RS), got.rs.Name)
}

func TestResolved_Precedence(t *testing.T) {
	first := derived(RS, generic.Unknown)
	second := generic.Entered("other", generic.Of(1.2), generic.UnitRatio)
	third := derived(RS, generic.Of(1.3))

	got := resolved(RS, first, second, third)
	assert.Equal(t, string(RS), got.Name)
	assert.Equal(t, generic.ProvenanceUserEntered, got.Provenance)

	none := resolved(RF, first)
	assert.False(t, none.Known())
	assert.Equal(t, string(RF), none.Name)
}
