package profiling

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"statcalc/domain/core"
	"statcalc/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapReader struct {
	order []string
	text  map[string]string
}

func (m mapReader) NumericColumns() []string { return m.order }

func (m mapReader) ColumnText(name string) (string, error) {
	text, ok := m.text[name]
	if !ok {
		return "", fmt.Errorf("no column %q", name)
	}
	return text, nil
}

func sequenceText(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprint(i + 1)
	}
	return strings.Join(parts, ",")
}

func TestAnalyze_Classroom(t *testing.T) {
	profile, err := Analyze("score", []float64{10, 12, 9, 11, 13, 10, 12, 11, 9, 14})
	require.NoError(t, err)

	assert.Equal(t, 10, profile.Count)
	assert.InDelta(t, 11.1, profile.Mean, 1e-12)
	assert.InDelta(t, 1.66332999331662, profile.StdDev, 1e-12)
	assert.Equal(t, 9.0, profile.Min)
	assert.Equal(t, 14.0, profile.Max)
	assert.Equal(t, 11.0, profile.Median)
	assert.LessOrEqual(t, profile.Min, profile.Q1)
	assert.LessOrEqual(t, profile.Q1, profile.Median)
	assert.LessOrEqual(t, profile.Median, profile.Q3)
	assert.LessOrEqual(t, profile.Q3, profile.Max)
	assert.Equal(t, 0, profile.Outliers)
	assert.Equal(t, stats.TestKindT, profile.SuggestedKind)
}

func TestAnalyze_OutliersAndConstantColumn(t *testing.T) {
	profile, err := Analyze("spiky", []float64{1, 1, 1, 1, 1, 1, 1, 100})
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Outliers)

	flat, err := Analyze("flat", []float64{5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, flat.StdDev)
	assert.Equal(t, 0.0, flat.Skewness)
	assert.Equal(t, 3.0, flat.Kurtosis)
}

func TestAnalyze_Moments(t *testing.T) {
	even, err := Analyze("even", []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0, even.Skewness, 1e-12)
	assert.InDelta(t, 1.8, even.Kurtosis, 1e-12)

	skewed, err := Analyze("skewed", []float64{1, 2, 3, 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.763632614803888, skewed.Skewness, 1e-9)
}

func TestNormality_JarqueBera(t *testing.T) {
	ok, p := normality(50, 0, 3)
	assert.True(t, ok)
	assert.InDelta(t, 1, p, 1e-12)

	// chi-squared(2) survival is exp(-x/2)
	ok, p = normality(20, 0.5, 3)
	assert.True(t, ok)
	assert.InDelta(t, math.Exp(-20.0/6*0.25/2), p, 1e-9)

	ok, p = normality(2000, 0.5, 3)
	assert.False(t, ok, "the same skewness is decisive in a large column")
	assert.Less(t, p, 1e-10)

	_, pKurt := normality(600, 0, 4)
	assert.InDelta(t, math.Exp(-600.0/6*0.25/2), pKurt, 1e-9)

	ok, p = normality(2, 0, 3)
	assert.False(t, ok)
	assert.Equal(t, 1.0, p)
}

func TestAnalyze_UniformColumnNormalityDependsOnSize(t *testing.T) {
	sequence := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = float64(i + 1)
		}
		return out
	}

	small, err := Analyze("small", sequence(40))
	require.NoError(t, err)
	assert.True(t, small.LooksNormal)

	large, err := Analyze("large", sequence(2000))
	require.NoError(t, err)
	assert.False(t, large.LooksNormal)
	assert.Less(t, large.NormalityP, 1e-6)
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze("none", nil)
	assert.ErrorIs(t, err, core.ErrEmptyInput)
}

func TestProfileTable_FollowsColumnOrder(t *testing.T) {
	reader := mapReader{
		order: []string{"big", "small"},
		text: map[string]string{
			"big":   sequenceText(40),
			"small": "10,12,9,11",
		},
	}

	profiles, err := NewDataProfiler().ProfileTable(reader)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "big", profiles[0].Name)
	assert.Equal(t, 40, profiles[0].Count)
	assert.InDelta(t, 20.5, profiles[0].Mean, 1e-12)
	assert.InDelta(t, 11.690451944500122, profiles[0].StdDev, 1e-9)
	assert.Equal(t, stats.TestKindZ, profiles[0].SuggestedKind)
	assert.True(t, profiles[0].IQR() > 0)

	assert.Equal(t, "small", profiles[1].Name)
	assert.Equal(t, stats.TestKindT, profiles[1].SuggestedKind)
}

func TestProfileColumn_PropagatesParseErrors(t *testing.T) {
	reader := mapReader{order: []string{"bad"}, text: map[string]string{"bad": "1,two,3"}}
	_, err := NewDataProfiler().ProfileTable(reader)
	assert.True(t, core.IsParseError(err))
}
