package profiling

import "statcalc/domain/stats"

// ColumnProfile summarises one numeric column before inference
type ColumnProfile struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"` // sample (n-1) deviation
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q1       float64 `json:"q1"`
	Q3       float64 `json:"q3"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	Outliers int     `json:"outliers"`

	LooksNormal bool    `json:"looks_normal"`
	NormalityP  float64 `json:"normality_p"`

	// SuggestedKind is Z once the column is large enough for the normal
	// approximation, T otherwise
	SuggestedKind stats.TestKind `json:"suggested_kind"`
}

// IQR is the interquartile range
func (p ColumnProfile) IQR() float64 {
	return p.Q3 - p.Q1
}
