package inference

import (
	"math"

	"statcalc/domain/core"
	"statcalc/domain/stats"
)

// ConfidenceFromPercent converts a percentage such as 95 into 0.95.
// Values outside the open interval (0, 100) are rejected.
func ConfidenceFromPercent(percent float64) (float64, error) {
	if !insideUnitInterval(percent / 100) {
		return 0, core.NewConfigurationError(core.ErrInvalidConfidenceLevel, percent)
	}
	return percent / 100, nil
}

// EstimateInterval computes a two-sided confidence interval for the mean.
func EstimateInterval(sample stats.Sample, confidenceLevel float64, kind stats.TestKind) (stats.IntervalResult, error) {
	if !insideUnitInterval(confidenceLevel) {
		return stats.IntervalResult{}, core.NewConfigurationError(core.ErrInvalidConfidenceLevel, confidenceLevel)
	}
	if err := Validate(sample, kind); err != nil {
		return stats.IntervalResult{}, err
	}

	desc := Describe(sample)
	dist := distributionFor(kind, desc.N)
	critical := dist.Quantile((1 + confidenceLevel) / 2)
	margin := critical * desc.StandardError

	result := stats.IntervalResult{
		LowerBound:      desc.Mean - margin,
		UpperBound:      desc.Mean + margin,
		CriticalValue:   critical,
		MarginOfError:   margin,
		ConfidenceLevel: confidenceLevel,
		Stats:           desc,
		Kind:            kind,
	}
	if kind == stats.TestKindT {
		result.DegreesOfFreedom = desc.DegreesOfFreedom()
	}

	if err := checkFinite(
		namedValue{"mean", desc.Mean},
		namedValue{"standard deviation", desc.StdDev},
		namedValue{"critical value", critical},
		namedValue{"lower bound", result.LowerBound},
		namedValue{"upper bound", result.UpperBound},
	); err != nil {
		return stats.IntervalResult{}, err
	}
	return result, nil
}

func insideUnitInterval(v float64) bool {
	return !math.IsNaN(v) && v > 0 && v < 1
}

type namedValue struct {
	name  string
	value float64
}

func checkFinite(values ...namedValue) error {
	for _, v := range values {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return core.NewComputationError(v.name, v.value)
		}
	}
	return nil
}
