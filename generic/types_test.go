package generic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/vanslyke/generic"
)

func TestOf_RejectsNaNAndInf(t *testing.T) {
	assert.False(t, generic.Of(math.NaN()).Known())
	assert.False(t, generic.Of(math.Inf(1)).Known())
	assert.False(t, generic.Of(math.Inf(-1)).Known())
	assert.True(t, generic.Of(0).Known())
}

func TestScalar_Or(t *testing.T) {
	assert.Equal(t, generic.Of(1), generic.Of(1).Or(generic.Of(2)))
	assert.Equal(t, generic.Of(2), generic.Unknown.Or(generic.Of(2)))
	assert.False(t, generic.Unknown.Or(generic.Unknown).Known())
}

func TestScalar_PtrRoundTrip(t *testing.T) {
	assert.Nil(t, generic.Unknown.Ptr())
	assert.False(t, generic.FromPtr(nil).Known())

	p := generic.Of(3.7).Ptr()
	if assert.NotNil(t, p) {
		assert.Equal(t, 3.7, *p)
	}
	assert.Equal(t, generic.Of(3.7), generic.FromPtr(p))
}

func TestValues(t *testing.T) {
	v, ok := generic.Values(generic.Of(1), generic.Of(2))
	assert.True(t, ok)
	assert.Equal(t, []float64{1, 2}, v)

	_, ok = generic.Values(generic.Of(1), generic.Unknown)
	assert.False(t, ok)
}

func TestQuantity_Provenance(t *testing.T) {
	q := generic.Entered("fat_milk", generic.Unknown, generic.UnitPercent)
	assert.Equal(t, generic.ProvenanceUnknown, q.Provenance)
	assert.False(t, q.Known())

	q = generic.Derived("rs", generic.Of(1.1), generic.UnitRatio)
	assert.Equal(t, generic.ProvenanceDerived, q.Provenance)
	assert.True(t, q.Known())
}

func TestQuantity_Display(t *testing.T) {
	tests := []struct {
		q    generic.Quantity
		want string
	}{
		{generic.Derived("fdb", generic.Of(50), generic.UnitPercent), "50.00%"},
		{generic.Derived("yield", generic.Of(10.56229508), generic.UnitPercent), "10.56%"},
		{generic.Derived("lbs", generic.Of(105.6229), generic.UnitPounds), "105.62 lbs"},
		{generic.Derived("rf", generic.Of(0.93), generic.UnitRatio), "0.930"},
		{generic.Derived("rs", generic.Of(1.10526), generic.UnitRatio), "1.105"},
		{generic.Derived("rs", generic.Unknown, generic.UnitRatio), "—"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.q.Display(), tt.q.Name)
	}
}
