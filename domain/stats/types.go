package stats

import (
	"fmt"
	"strconv"
	"strings"

	"statcalc/domain/core"
)

// Sample sizes enforced by the validator
const (
	MinSampleSize  = 2
	MinZSampleSize = 30
)

// Sample is an ordered sequence of finite observations.
type Sample []float64

// Len returns the number of observations
func (s Sample) Len() int {
	return len(s)
}

// DescriptiveStats summarizes one sample. Values are computed once per request
// and never mutated.
type DescriptiveStats struct {
	N             int     `json:"n"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"std_dev"`        // Bessel-corrected (n-1 divisor)
	StandardError float64 `json:"standard_error"` // StdDev / sqrt(N)
}

// DegreesOfFreedom returns n-1
func (d DescriptiveStats) DegreesOfFreedom() int {
	return d.N - 1
}

// TestKind selects the reference distribution
type TestKind string

const (
	TestKindZ TestKind = "Z"
	TestKindT TestKind = "T"
)

// ParseTestKind accepts "z"/"t" in any case, optionally suffixed with "-test"
func ParseTestKind(s string) (TestKind, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.TrimSuffix(strings.TrimSuffix(norm, " TEST"), "-TEST")
	switch norm {
	case "Z":
		return TestKindZ, nil
	case "T", "STUDENT", "T-STUDENT":
		return TestKindT, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrInvalidTestKind, s)
}

// Valid reports whether k is a known kind
func (k TestKind) Valid() bool {
	return k == TestKindZ || k == TestKindT
}

// Symbol is the statistic's conventional letter as printed in reports
func (k TestKind) Symbol() string {
	if k == TestKindT {
		return "t"
	}
	return "Z"
}

// Direction is the alternative hypothesis direction
type Direction string

const (
	TwoSided    Direction = "two-sided"
	LessThan    Direction = "less"
	GreaterThan Direction = "greater"
)

var directionAliases = map[string]Direction{
	"two-sided":    TwoSided,
	"two_sided":    TwoSided,
	"twosided":     TwoSided,
	"two-tailed":   TwoSided,
	"!=":           TwoSided,
	"≠":            TwoSided,
	"less":         LessThan,
	"less-than":    LessThan,
	"left":         LessThan,
	"left-tailed":  LessThan,
	"<":            LessThan,
	"greater":      GreaterThan,
	"greater-than": GreaterThan,
	"right":        GreaterThan,
	"right-tailed": GreaterThan,
	">":            GreaterThan,
}

// ParseDirection resolves user-facing direction names and symbols
func ParseDirection(s string) (Direction, error) {
	if d, ok := directionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrInvalidDirection, s)
}

// Valid reports whether d is a known direction
func (d Direction) Valid() bool {
	return d == TwoSided || d == LessThan || d == GreaterThan
}

// Symbol returns the relation used in the alternative hypothesis
func (d Direction) Symbol() string {
	switch d {
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	default:
		return "≠"
	}
}

// FormatValue renders a user-supplied parameter (null value, alpha) in its
// shortest exact form.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// AlternativeLabel renders H1, e.g. "μ ≠ 10"
func AlternativeLabel(d Direction, nullValue float64) string {
	return fmt.Sprintf("μ %s %s", d.Symbol(), FormatValue(nullValue))
}

// NullLabel renders H0, e.g. "μ = 10"
func NullLabel(nullValue float64) string {
	return fmt.Sprintf("μ = %s", FormatValue(nullValue))
}

// IntervalResult is a two-sided confidence interval for the mean.
// INVARIANTS:
// - LowerBound = Mean - MarginOfError, UpperBound = Mean + MarginOfError
// - DegreesOfFreedom is set only for TestKindT (0 otherwise)
type IntervalResult struct {
	LowerBound       float64          `json:"lower_bound"`
	UpperBound       float64          `json:"upper_bound"`
	CriticalValue    float64          `json:"critical_value"`
	MarginOfError    float64          `json:"margin_of_error"`
	ConfidenceLevel  float64          `json:"confidence_level"` // fraction in (0,1)
	Stats            DescriptiveStats `json:"stats"`
	Kind             TestKind         `json:"kind"`
	DegreesOfFreedom int              `json:"degrees_of_freedom,omitempty"`
}

// HasDegreesOfFreedom reports whether the result came from the t distribution
func (r IntervalResult) HasDegreesOfFreedom() bool {
	return r.Kind == TestKindT
}

// HypothesisResult is a one-sample test of the mean.
// INVARIANTS:
// - PValue in [0,1]
// - Rejected == (PValue <= Alpha); CriticalValue is informational only
type HypothesisResult struct {
	TestStatistic    float64          `json:"test_statistic"`
	PValue           float64          `json:"p_value"`
	NullValue        float64          `json:"null_value"`
	Alpha            float64          `json:"alpha"`
	Direction        Direction        `json:"direction"`
	AlternativeLabel string           `json:"alternative_label"`
	CriticalValue    float64          `json:"critical_value"`
	Stats            DescriptiveStats `json:"stats"`
	Kind             TestKind         `json:"kind"`
	DegreesOfFreedom int              `json:"degrees_of_freedom,omitempty"`
	Rejected         bool             `json:"rejected"`
}

// HasDegreesOfFreedom reports whether the result came from the t distribution
func (r HypothesisResult) HasDegreesOfFreedom() bool {
	return r.Kind == TestKindT
}
