package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Parse errors
	ErrParse      = errors.New("invalid numeric input")
	ErrEmptyInput = fmt.Errorf("%w: no sample data provided", ErrParse)

	// Validation errors
	ErrValidation         = errors.New("sample rejected")
	ErrInsufficientData   = fmt.Errorf("%w: at least 2 data points are required", ErrValidation)
	ErrSampleTooSmallForZ = fmt.Errorf("%w: the Z procedure requires at least 30 data points (use t for small samples)", ErrValidation)

	// Configuration errors
	ErrConfiguration          = errors.New("invalid configuration")
	ErrInvalidConfidenceLevel = fmt.Errorf("%w: confidence level must be strictly between 0 and 1 (0%% and 100%%)", ErrConfiguration)
	ErrInvalidAlpha           = fmt.Errorf("%w: significance level must be strictly between 0 and 1", ErrConfiguration)
	ErrInvalidNullValue       = fmt.Errorf("%w: null hypothesis value must be a finite number", ErrConfiguration)
	ErrInvalidTestKind        = fmt.Errorf("%w: unknown test kind", ErrConfiguration)
	ErrInvalidDirection       = fmt.Errorf("%w: unknown alternative direction", ErrConfiguration)

	// Computation errors
	ErrComputation = errors.New("numeric computation failed")
)

// InvalidToken describes one rejected token of a raw sample.
type InvalidToken struct {
	Index  int    // zero-based position among non-empty tokens
	Text   string // trimmed token text
	Reason string
}

// ParseError aggregates every invalid token found in one input. It matches
// ErrParse under errors.Is.
type ParseError struct {
	Tokens []InvalidToken
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d invalid token", ErrParse.Error(), len(e.Tokens))
	if len(e.Tokens) != 1 {
		b.WriteString("s")
	}
	const shown = 5
	for i, tok := range e.Tokens {
		if i == shown {
			fmt.Fprintf(&b, "; and %d more", len(e.Tokens)-shown)
			break
		}
		sep := "; "
		if i == 0 {
			sep = " ("
		}
		fmt.Fprintf(&b, "%s#%d %q: %s", sep, tok.Index+1, tok.Text, tok.Reason)
	}
	if len(e.Tokens) > 0 {
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Error constructors with context
func NewSampleSizeError(base error, n int) error {
	return fmt.Errorf("%w (got n=%d)", base, n)
}

func NewConfigurationError(base error, value float64) error {
	return fmt.Errorf("%w (got %v)", base, value)
}

func NewComputationError(field string, value float64) error {
	return fmt.Errorf("%w: %s is not finite (%v)", ErrComputation, field, value)
}

// Error checking helpers
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsComputationError(err error) bool {
	return errors.Is(err, ErrComputation)
}
