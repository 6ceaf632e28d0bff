package inference

import (
	"math"

	"statcalc/domain/stats"

	"gonum.org/v1/gonum/stat/distuv"
)

// referenceDistribution is the sampling distribution of the standardized mean.
type referenceDistribution interface {
	CDF(x float64) float64
	Quantile(p float64) float64
}

// distributionFor returns the standard normal for Z and Student's t with
// n-1 degrees of freedom for T.
func distributionFor(kind stats.TestKind, n int) referenceDistribution {
	if kind == stats.TestKindT {
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	}
	return distuv.UnitNormal
}

// pValue computes the p-value for the given direction
func pValue(dist referenceDistribution, statistic float64, direction stats.Direction) float64 {
	var p float64
	switch direction {
	case stats.LessThan:
		p = dist.CDF(statistic)
	case stats.GreaterThan:
		p = 1 - dist.CDF(statistic)
	default:
		p = 2 * (1 - dist.CDF(math.Abs(statistic)))
	}
	return clampProbability(p)
}

// rejectionCritical returns the boundary of the rejection region at level
// alpha. TwoSided returns the positive boundary; the region is |stat| > value.
func rejectionCritical(dist referenceDistribution, alpha float64, direction stats.Direction) float64 {
	switch direction {
	case stats.LessThan:
		return dist.Quantile(alpha)
	case stats.GreaterThan:
		return dist.Quantile(1 - alpha)
	default:
		return dist.Quantile(1 - alpha/2)
	}
}

func clampProbability(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
