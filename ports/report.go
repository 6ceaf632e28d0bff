package ports

import (
	"context"

	"statcalc/domain/stats"
)

// ReportFormatter renders inference results as text
type ReportFormatter interface {
	Interval(r stats.IntervalResult) string
	Hypothesis(r stats.HypothesisResult) string
}

// ReportSink persists a rendered report and returns where it was written
type ReportSink interface {
	Save(ctx context.Context, path, title, body string) (string, error)
}
