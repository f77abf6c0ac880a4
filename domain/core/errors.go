package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrRunNotFound      = fmt.Errorf("%w: run", ErrNotFound)
	ErrVariableNotFound = fmt.Errorf("%w: variable", ErrNotFound)

	// Validation errors
	ErrShapeMismatch    = errors.New("sample shape mismatch")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNonFinite        = errors.New("non-finite sample value")
	ErrDuplicateKey     = errors.New("duplicate variable key")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
	ErrSeedMismatch     = errors.New("seed mismatch")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewShapeMismatchError(key VariableKey, marginalLen, copulaLen int) error {
	return fmt.Errorf("%w: variable %s has %d marginal samples but %d copula samples",
		ErrShapeMismatch, key, marginalLen, copulaLen)
}

func NewNonFiniteError(key VariableKey, position int) error {
	return fmt.Errorf("%w: variable %s at position %d", ErrNonFinite, key, position)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNonFinite) ||
		errors.Is(err, ErrDuplicateKey)
}
