package profiling

import (
	"fmt"
	"math"

	"statcalc/domain/core"
	domainstats "statcalc/domain/stats"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Analyze computes the summary and shape of a numeric column
func Analyze(name string, data []float64) (ColumnProfile, error) {
	profile := ColumnProfile{Name: name, Count: len(data)}
	if len(data) == 0 {
		return profile, fmt.Errorf("column %q: %w", name, core.ErrEmptyInput)
	}

	var err error
	steps := []struct {
		dst *float64
		fn  func(stats.Float64Data) (float64, error)
	}{
		{&profile.Mean, stats.Mean},
		{&profile.Min, stats.Min},
		{&profile.Max, stats.Max},
		{&profile.Median, stats.Median},
	}
	for _, step := range steps {
		if *step.dst, err = step.fn(data); err != nil {
			return profile, fmt.Errorf("column %q: %w", name, err)
		}
	}

	profile.Q1, profile.Q3 = profile.Median, profile.Median
	if len(data) >= domainstats.MinSampleSize {
		quartiles, err := stats.Quartile(data)
		if err != nil {
			return profile, fmt.Errorf("column %q: %w", name, err)
		}
		profile.Q1, profile.Q3 = quartiles.Q1, quartiles.Q3
		if profile.StdDev, err = stats.StandardDeviationSample(data); err != nil {
			return profile, fmt.Errorf("column %q: %w", name, err)
		}
	}

	profile.Skewness = skewness(data, profile.Mean, profile.StdDev)
	profile.Kurtosis = kurtosis(data, profile.Mean, profile.StdDev)
	profile.LooksNormal, profile.NormalityP = normality(len(data), profile.Skewness, profile.Kurtosis)
	profile.Outliers = countOutliers(data, profile.Q1, profile.Q3)

	profile.SuggestedKind = domainstats.TestKindT
	if len(data) >= domainstats.MinZSampleSize {
		profile.SuggestedKind = domainstats.TestKindZ
	}
	return profile, nil
}

// centralMoments returns the population second, third and fourth moments
func centralMoments(data []float64, mean float64) (m2, m3, m4 float64) {
	for _, x := range data {
		d := x - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	n := float64(len(data))
	return m2 / n, m3 / n, m4 / n
}

// skewness is the adjusted Fisher-Pearson coefficient G1
func skewness(data []float64, mean, sd float64) float64 {
	n := float64(len(data))
	if n < 3 || sd == 0 {
		return 0
	}
	m2, m3, _ := centralMoments(data, mean)
	g1 := m3 / math.Pow(m2, 1.5)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// kurtosis is the bias-corrected sample kurtosis G2+3 (3 for a normal column)
func kurtosis(data []float64, mean, sd float64) float64 {
	n := float64(len(data))
	if n < 4 || sd == 0 {
		return 3
	}
	m2, _, m4 := centralMoments(data, mean)
	g2 := m4/(m2*m2) - 3
	return ((n+1)*g2+6)*(n-1)/((n-2)*(n-3)) + 3
}

// normality is the Jarque-Bera test, n/6·(S² + (K−3)²/4) against
// chi-squared(2). It only guides the choice of procedure.
func normality(n int, skew, kurt float64) (bool, float64) {
	if n < 3 {
		return false, 1
	}
	excess := kurt - 3
	jb := float64(n) / 6 * (skew*skew + excess*excess/4)
	p := 1 - distuv.ChiSquared{K: 2}.CDF(jb)
	return p > 0.05, p
}

// countOutliers applies the 1.5 IQR fence
func countOutliers(data []float64, q1, q3 float64) int {
	fence := 1.5 * (q3 - q1)
	count := 0
	for _, x := range data {
		if x < q1-fence || x > q3+fence {
			count++
		}
	}
	return count
}
