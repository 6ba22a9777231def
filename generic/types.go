/*
Package generic provides the domain-agnostic value types used by the yield engine.

PURPOSE:
  The derivation engine works with measurements that may or may not be known.
  This package holds the optional scalar, the unit and provenance vocabulary,
  and the Quantity that ties them together. Nothing here knows about cheese.

KEY CONCEPTS IN THIS FILE (types.go):
  - Scalar: An optional float64. Unknown is the zero value, never a sentinel 0.
  - Unit: percent-by-weight, pounds, or a dimensionless ratio/factor
  - Provenance: user-entered, derived, or unknown
  - Quantity: A named Scalar with its Unit and Provenance

DESIGN PRINCIPLES:
  1. Unknown over error: arithmetic that cannot be performed yields Unknown
  2. No NaN: Of() maps NaN and infinities to Unknown
  3. Value semantics: every type here is safe to copy and share

USAGE:
  fat := generic.Of(25)
  ts := generic.Unknown
  if v, ok := generic.Values(fat, ts); ok {
      ...
  }

SEE ALSO:
  - errors.go: Input validation errors for the collection layer
  - vanslyke/formulas.go: Formulas built on Scalar
*/
package generic

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SCALAR - Optional floating-point value
// =============================================================================

// Scalar is a float64 that may be unknown.
type Scalar struct {
	value float64
	known bool
}

// Unknown is the scalar with no value.
var Unknown = Scalar{}

// Of returns a known scalar, or Unknown when v is NaN or infinite.
func Of(v float64) Scalar {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unknown
	}
	return Scalar{value: v, known: true}
}

// FromPtr converts an optional JSON field.
func FromPtr(p *float64) Scalar {
	if p == nil {
		return Unknown
	}
	return Of(*p)
}

func (s Scalar) Known() bool { return s.known }
func (s Scalar) Get() (float64, bool) { return s.value, s.known }
func (s Scalar) IsZero() bool { return s.known && s.value == 0 }
func (s Scalar) Equal(other Scalar) bool { return s == other }

// Or returns s when known, otherwise fallback.
func (s Scalar) Or(fallback Scalar) Scalar {
	if s.known {
		return s
	}
	return fallback
}

// Ptr returns nil for Unknown. Used by DTOs.
func (s Scalar) Ptr() *float64 {
	if !s.known {
		return nil
	}
	v := s.value
	return &v
}

// Values unpacks scalars in order. ok is false if any of them is unknown.
func Values(scalars ...Scalar) (values []float64, ok bool) {
	values = make([]float64, len(scalars))
	for i, s := range scalars {
		if !s.known {
			return nil, false
		}
		values[i] = s.value
	}
	return values, true
}

// =============================================================================
// UNIT / PROVENANCE
// =============================================================================

type Unit string

const (
	UnitPercent Unit = "percent" // percent by weight, 0-100
	UnitPounds  Unit = "lbs"
	UnitRatio   Unit = "ratio" // dimensionless recovery factor or ratio
)

// Places is the number of decimal places a value of this unit is shown with.
func (u Unit) Places() int32 {
	switch u {
	case UnitRatio:
		return 3
	default:
		return 2
	}
}

type Provenance string

const (
	ProvenanceUserEntered Provenance = "user-entered"
	ProvenanceDerived     Provenance = "derived"
	ProvenanceUnknown     Provenance = "unknown"
)

// =============================================================================
// QUANTITY - Named scalar with unit and provenance
// =============================================================================

type Quantity struct {
	Name       string
	Value      Scalar
	Unit       Unit
	Provenance Provenance
}

// Entered builds a user-entered quantity. An unknown value stays unknown.
func Entered(name string, v Scalar, unit Unit) Quantity {
	return newQuantity(name, v, unit, ProvenanceUserEntered)
}

// Derived builds a derived quantity. An unknown value stays unknown.
func Derived(name string, v Scalar, unit Unit) Quantity {
	return newQuantity(name, v, unit, ProvenanceDerived)
}

func newQuantity(name string, v Scalar, unit Unit, p Provenance) Quantity {
	if !v.Known() {
		p = ProvenanceUnknown
	}
	return Quantity{Name: name, Value: v, Unit: unit, Provenance: p}
}

func (q Quantity) Known() bool {
	return q.Value.Known() && q.Provenance != ProvenanceUnknown
}

// Decimal returns the value rounded to the unit's display precision.
func (q Quantity) Decimal() (decimal.Decimal, bool) {
	v, ok := q.Value.Get()
	if !ok || q.Provenance == ProvenanceUnknown {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(v).Round(q.Unit.Places()), true
}

// Display renders the value for people: "50.00%", "1000.00 lbs", "0.930", or "—".
func (q Quantity) Display() string {
	d, ok := q.Decimal()
	if !ok {
		return "—"
	}
	s := d.StringFixed(q.Unit.Places())
	switch q.Unit {
	case UnitPercent:
		return s + "%"
	case UnitPounds:
		return s + " lbs"
	default:
		return s
	}
}
