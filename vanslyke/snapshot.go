package vanslyke

import (
	"errors"
	"math"
	"sort"

	"github.com/warp/vanslyke/generic"
)

// =============================================================================
// SNAPSHOT - Immutable input bag
// =============================================================================

// Snapshot holds the inputs of one scenario. The zero value is an empty
// snapshot. With and WithFDBTarget return modified copies; a Snapshot is
// never changed in place, so it can be shared freely.
type Snapshot struct {
	values       map[Name]float64
	useFDBTarget bool
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() Snapshot {
	return Snapshot{}
}

// With returns a copy of s with name set to v. Setting FDBTarget does not
// put the target in play; use WithFDBTarget for that.
func (s Snapshot) With(name Name, v float64) Snapshot {
	values := make(map[Name]float64, len(s.values)+1)
	for k, val := range s.values {
		values[k] = val
	}
	values[name] = v
	return Snapshot{values: values, useFDBTarget: s.useFDBTarget}
}

// WithFDBTarget returns a copy of s with the FDB target set and in play.
func (s Snapshot) WithFDBTarget(fdb float64) Snapshot {
	out := s.With(FDBTarget, fdb)
	out.useFDBTarget = true
	return out
}

// WithFDBTargetFlag returns a copy of s with the target flag set, whether
// or not a target has been entered. The flag alone derives nothing.
func (s Snapshot) WithFDBTargetFlag() Snapshot {
	return Snapshot{values: s.values, useFDBTarget: true}
}

// WithoutFDBTarget returns a copy of s with the target flag cleared. The
// entered value is kept but ignored.
func (s Snapshot) WithoutFDBTarget() Snapshot {
	return Snapshot{values: s.values, useFDBTarget: false}
}

// UseFDBTarget reports whether the "use target" flag is set.
func (s Snapshot) UseFDBTarget() bool {
	return s.useFDBTarget
}

// Get returns the entered value of name, or Unknown.
func (s Snapshot) Get(name Name) generic.Scalar {
	v, ok := s.values[name]
	if !ok {
		return generic.Unknown
	}
	return generic.Of(v)
}

// Target returns the FDB target when it is in play.
func (s Snapshot) Target() generic.Scalar {
	if !s.useFDBTarget {
		return generic.Unknown
	}
	return s.Get(FDBTarget)
}

// Names returns the entered names, sorted.
func (s Snapshot) Names() []Name {
	names := make([]Name, 0, len(s.values))
	for n := range s.values {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Validate checks what the input-collection layer is responsible for:
// every name is a known input and every value is finite and not negative. Derive never calls it.
func (s Snapshot) Validate() error {
	var errs []error
	for _, n := range s.Names() {
		v := s.values[n]
		switch {
		case !n.IsInput():
			errs = append(errs, &generic.InputError{Field: string(n), Value: v, Err: generic.ErrUnknownInput})
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, &generic.InputError{Field: string(n), Value: v, Err: generic.ErrNonFiniteInput})
		case v < 0:
			errs = append(errs, &generic.InputError{Field: string(n), Value: v, Err: generic.ErrNegativeInput})
		}
	}
	return errors.Join(errs...)
}
