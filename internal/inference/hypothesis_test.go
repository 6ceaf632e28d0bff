package inference

import (
	"math"
	"testing"

	"statcalc/domain/core"
	"statcalc/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestMean_TwoSidedT(t *testing.T) {
	r, err := TestMean(classroom, 10, 0.05, stats.TwoSided, stats.TestKindT)
	require.NoError(t, err)

	assert.InDelta(t, 2.0912900267307766, r.TestStatistic, 1e-9)
	assert.InDelta(t, 0.06604500568481564, r.PValue, 1e-6)
	assert.Equal(t, 9, r.DegreesOfFreedom)
	assert.Equal(t, "μ ≠ 10", r.AlternativeLabel)
	assert.False(t, r.Rejected, "0.066 > 0.05 must not reject")
	assert.InDelta(t, 2.2621571627982027, r.CriticalValue, 1e-6)
}

func TestTestMean_Directions(t *testing.T) {
	tests := []struct {
		name      string
		sample    stats.Sample
		null      float64
		direction stats.Direction
		kind      stats.TestKind
		wantP     float64
		wantCrit  float64
		wantLabel string
	}{
		{"t less", classroom, 10, stats.LessThan, stats.TestKindT, 0.9669774971575922, -1.833112932656236, "μ < 10"},
		{"t greater", classroom, 10, stats.GreaterThan, stats.TestKindT, 0.03302250284240782, 1.8331129326562343, "μ > 10"},
		{"z two-sided", sequence(40), 19, stats.TwoSided, stats.TestKindZ, 0.41707705952056484, 1.9599639845400536, "μ ≠ 19"},
		{"z less", sequence(40), 19, stats.LessThan, stats.TestKindZ, 0.7914614702397176, -1.6448536269514726, "μ < 19"},
		{"z greater", sequence(40), 19, stats.GreaterThan, stats.TestKindZ, 0.20853852976028242, 1.6448536269514715, "μ > 19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := TestMean(tt.sample, tt.null, 0.05, tt.direction, tt.kind)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantP, r.PValue, 1e-6)
			assert.InDelta(t, tt.wantCrit, r.CriticalValue, 1e-6)
			assert.Equal(t, tt.wantLabel, r.AlternativeLabel)
			assert.Equal(t, r.PValue <= r.Alpha, r.Rejected)
		})
	}
}

func TestTestMean_GreaterRejects(t *testing.T) {
	r, err := TestMean(classroom, 10, 0.05, stats.GreaterThan, stats.TestKindT)
	require.NoError(t, err)
	assert.True(t, r.Rejected)
	assert.Greater(t, r.TestStatistic, r.CriticalValue)
}

func TestTestMean_ZHasNoDegreesOfFreedom(t *testing.T) {
	r, err := TestMean(sequence(30), 15, 0.1, stats.TwoSided, stats.TestKindZ)
	require.NoError(t, err)
	assert.Zero(t, r.DegreesOfFreedom)
	assert.False(t, r.HasDegreesOfFreedom())
}

func TestTestMean_ConfigurationErrors(t *testing.T) {
	for _, alpha := range []float64{0, 1, -0.1, 5, math.NaN()} {
		_, err := TestMean(classroom, 10, alpha, stats.TwoSided, stats.TestKindT)
		assert.ErrorIs(t, err, core.ErrInvalidAlpha, "alpha %v", alpha)
	}

	_, err := TestMean(classroom, math.Inf(1), 0.05, stats.TwoSided, stats.TestKindT)
	assert.ErrorIs(t, err, core.ErrInvalidNullValue)

	_, err = TestMean(classroom, 10, 0.05, stats.Direction("up"), stats.TestKindT)
	assert.ErrorIs(t, err, core.ErrInvalidDirection)
}

func TestTestMean_ValidationErrors(t *testing.T) {
	_, err := TestMean(sequence(29), 10, 0.05, stats.TwoSided, stats.TestKindZ)
	assert.ErrorIs(t, err, core.ErrSampleTooSmallForZ)

	_, err = TestMean(stats.Sample{1}, 10, 0.05, stats.TwoSided, stats.TestKindT)
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestTestMean_ZeroVarianceIsComputationError(t *testing.T) {
	_, err := TestMean(stats.Sample{4, 4, 4, 4}, 3, 0.05, stats.TwoSided, stats.TestKindT)
	assert.ErrorIs(t, err, core.ErrComputation)

	_, err = TestMean(stats.Sample{4, 4, 4, 4}, 4, 0.05, stats.TwoSided, stats.TestKindT)
	assert.ErrorIs(t, err, core.ErrComputation)
}

func TestTestMean_DoesNotMutateSample(t *testing.T) {
	sample := stats.Sample{3, 1, 2, 5, 4}
	before := append(stats.Sample(nil), sample...)
	_, err := TestMean(sample, 2, 0.05, stats.TwoSided, stats.TestKindT)
	require.NoError(t, err)
	assert.Equal(t, before, sample)
}
