package inference

import (
	"math"

	"statcalc/domain/core"
	"statcalc/domain/stats"
)

// TestMean runs a one-sample Z or t test of H0: μ = nullValue against the
// alternative selected by direction. The null hypothesis is rejected iff the
// p-value is at most alpha.
func TestMean(sample stats.Sample, nullValue, alpha float64, direction stats.Direction, kind stats.TestKind) (stats.HypothesisResult, error) {
	if !insideUnitInterval(alpha) {
		return stats.HypothesisResult{}, core.NewConfigurationError(core.ErrInvalidAlpha, alpha)
	}
	if math.IsNaN(nullValue) || math.IsInf(nullValue, 0) {
		return stats.HypothesisResult{}, core.NewConfigurationError(core.ErrInvalidNullValue, nullValue)
	}
	if !direction.Valid() {
		return stats.HypothesisResult{}, core.ErrInvalidDirection
	}
	if err := Validate(sample, kind); err != nil {
		return stats.HypothesisResult{}, err
	}

	desc := Describe(sample)
	statistic := (desc.Mean - nullValue) / desc.StandardError
	if err := checkFinite(
		namedValue{"mean", desc.Mean},
		namedValue{"standard error", desc.StandardError},
		namedValue{"test statistic", statistic},
	); err != nil {
		return stats.HypothesisResult{}, err
	}

	dist := distributionFor(kind, desc.N)
	p := pValue(dist, statistic, direction)
	critical := rejectionCritical(dist, alpha, direction)
	if err := checkFinite(
		namedValue{"p-value", p},
		namedValue{"critical value", critical},
	); err != nil {
		return stats.HypothesisResult{}, err
	}

	result := stats.HypothesisResult{
		TestStatistic:    statistic,
		PValue:           p,
		NullValue:        nullValue,
		Alpha:            alpha,
		Direction:        direction,
		AlternativeLabel: stats.AlternativeLabel(direction, nullValue),
		CriticalValue:    critical,
		Stats:            desc,
		Kind:             kind,
		Rejected:         p <= alpha,
	}
	if kind == stats.TestKindT {
		result.DegreesOfFreedom = desc.DegreesOfFreedom()
	}
	return result, nil
}
