/*
errors.go - Centralized error types for the input and storage layers

PURPOSE:
  The derivation engine never returns errors: missing data and algebraic
  domain violations are Unknown values. Errors exist only at the edges, where
  raw input is collected and scenarios are stored.

ERROR CATEGORIES:
  1. Input errors - Structurally invalid input (negative or non-finite value, unknown field)
  2. Scenario errors - Malformed or missing stored scenarios

USAGE:
  if errors.Is(err, generic.ErrNegativeInput) {
      // 400
  }

SEE ALSO:
  - vanslyke/snapshot.go: Validate produces InputErrors
  - api/handlers.go: Maps these errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNegativeInput is returned when a measurement is below zero.
	ErrNegativeInput = errors.New("negative input")

	// ErrNonFiniteInput is returned for NaN or infinite measurements.
	ErrNonFiniteInput = errors.New("non-finite input")

	// ErrUnknownInput is returned when a field is not a recognised input.
	ErrUnknownInput = errors.New("unknown input")

	// ErrInvalidScenario is returned when a scenario document cannot be parsed.
	ErrInvalidScenario = errors.New("invalid scenario")

	// ErrScenarioNotFound is returned when a referenced scenario doesn't exist.
	ErrScenarioNotFound = errors.New("scenario not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InputError names the offending field.
type InputError struct {
	Field string
	Value float64
	Err   error
}

func (e *InputError) Error() string {
	if errors.Is(e.Err, ErrNegativeInput) {
		return fmt.Sprintf("%s: %v must not be negative", e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNegativeInput) ||
		errors.Is(err, ErrNonFiniteInput) ||
		errors.Is(err, ErrUnknownInput) ||
		errors.Is(err, ErrInvalidScenario)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScenarioNotFound)
}
