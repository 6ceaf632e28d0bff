package inference

import (
	"statcalc/domain/core"
	"statcalc/domain/stats"
)

// Validate checks that the sample supports the requested procedure.
func Validate(sample stats.Sample, kind stats.TestKind) error {
	if !kind.Valid() {
		return core.ErrInvalidTestKind
	}
	n := sample.Len()
	if n < stats.MinSampleSize {
		return core.NewSampleSizeError(core.ErrInsufficientData, n)
	}
	// Z relies on the large-sample approximation; no silent fallback to t.
	if kind == stats.TestKindZ && n < stats.MinZSampleSize {
		return core.NewSampleSizeError(core.ErrSampleTooSmallForZ, n)
	}
	return nil
}
