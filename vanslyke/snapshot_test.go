package vanslyke_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/vanslyke/generic"
	"github.com/warp/vanslyke/vanslyke"
)

func TestSnapshot_WithReturnsCopy(t *testing.T) {
	base := vanslyke.NewSnapshot().With(vanslyke.FatMilk, 3.7)
	changed := base.With(vanslyke.FatMilk, 4.1).With(vanslyke.LbsMilk, 1000)

	v, _ := base.Get(vanslyke.FatMilk).Get()
	assert.Equal(t, 3.7, v)
	assert.False(t, base.Get(vanslyke.LbsMilk).Known())

	v, _ = changed.Get(vanslyke.FatMilk).Get()
	assert.Equal(t, 4.1, v)
}

func TestSnapshot_ZeroIsKnown(t *testing.T) {
	s := vanslyke.NewSnapshot().With(vanslyke.CaseinCheese, 0)
	assert.True(t, s.Get(vanslyke.CaseinCheese).Known())
	assert.True(t, s.Get(vanslyke.CaseinCheese).IsZero())
	assert.False(t, s.Get(vanslyke.CaseinMilk).Known())
}

func TestSnapshot_TargetNeedsFlag(t *testing.T) {
	s := vanslyke.NewSnapshot().With(vanslyke.FDBTarget, 50)
	assert.False(t, s.UseFDBTarget())
	assert.False(t, s.Target().Known())

	s = s.WithFDBTarget(52)
	assert.True(t, s.UseFDBTarget())
	v, _ := s.Target().Get()
	assert.Equal(t, 52.0, v)

	off := s.WithoutFDBTarget()
	assert.False(t, off.Target().Known())
	assert.True(t, off.Get(vanslyke.FDBTarget).Known(), "entered value is kept")
	assert.True(t, s.UseFDBTarget(), "original unchanged")
}

func TestSnapshot_Validate(t *testing.T) {
	assert.NoError(t, vanslyke.NewSnapshot().Validate())
	assert.NoError(t, vanslyke.NewSnapshot().With(vanslyke.FatMilk, 0).Validate())

	err := vanslyke.NewSnapshot().
		With(vanslyke.FatMilk, -1).
		With("whey_protein", 1).
		Validate()

	assert.Error(t, err)
	assert.True(t, errors.Is(err, generic.ErrNegativeInput))
	assert.True(t, errors.Is(err, generic.ErrUnknownInput))
	assert.True(t, generic.IsClientError(err))

	var inputErr *generic.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestSnapshot_ValidateNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := vanslyke.NewSnapshot().With(vanslyke.FatMilk, v).Validate()
		assert.ErrorIs(t, err, generic.ErrNonFiniteInput, v)
		assert.NotErrorIs(t, err, generic.ErrNegativeInput, v)
	}
}

func TestSnapshot_FDBTargetFlagAlone(t *testing.T) {
	s := vanslyke.NewSnapshot().WithFDBTargetFlag()
	assert.True(t, s.UseFDBTarget())
	assert.False(t, s.Target().Known())

	s = s.With(vanslyke.FDBTarget, 52.7)
	assert.True(t, s.UseFDBTarget(), "With keeps the flag")
	assert.Equal(t, generic.Of(52.7), s.Target())
}

func TestName_UnitsAndInputs(t *testing.T) {
	assert.Equal(t, generic.UnitPercent, vanslyke.FatMilk.Unit())
	assert.Equal(t, generic.UnitPounds, vanslyke.LbsCheesePredicted.Unit())
	assert.Equal(t, generic.UnitRatio, vanslyke.CaseinFatRatioRequired.Unit())

	assert.True(t, vanslyke.RS.IsInput())
	assert.False(t, vanslyke.YieldPredicted.IsInput())
	assert.Len(t, vanslyke.Inputs(), 14)
}
