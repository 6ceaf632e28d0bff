package inference

import (
	"math"

	"statcalc/domain/stats"

	gstat "gonum.org/v1/gonum/stat"
)

// Describe computes mean, sample standard deviation and standard error.
// The caller guarantees n >= 2.
func Describe(sample stats.Sample) stats.DescriptiveStats {
	n := sample.Len()
	mean, sd := gstat.MeanStdDev(sample, nil)
	return stats.DescriptiveStats{
		N:             n,
		Mean:          mean,
		StdDev:        sd,
		StandardError: sd / math.Sqrt(float64(n)),
	}
}
