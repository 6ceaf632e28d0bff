package app

import (
	"context"
	"fmt"
	"time"

	"statcalc/domain/core"
	"statcalc/domain/stats"
	"statcalc/internal"
	"statcalc/internal/errors"
	"statcalc/internal/inference"
	"statcalc/internal/report"
	"statcalc/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// CalculatorService runs parse, inference and formatting for one request
type CalculatorService struct {
	formatter ports.ReportFormatter
	sink      ports.ReportSink
	workers   int64
	logger    *internal.Logger
}

// IntervalRequest describes a confidence-interval calculation
type IntervalRequest struct {
	Data              string
	ConfidencePercent float64 // e.g. 95
	Kind              stats.TestKind
	Style             string  // empty uses the service formatter
	RequestID         core.ID // empty generates one
}

// IntervalResponse carries the numbers and their rendered report
type IntervalResponse struct {
	ID     core.ID              `json:"request_id"`
	Digest core.Hash            `json:"sample_digest"`
	Result stats.IntervalResult `json:"result"`
	Report string               `json:"report"`
}

// HypothesisRequest describes a one-sample mean test
type HypothesisRequest struct {
	Data      string
	NullValue float64
	Alpha     float64
	Direction stats.Direction
	Kind      stats.TestKind
	Style     string
	RequestID core.ID
}

// HypothesisResponse carries the decision and its rendered report
type HypothesisResponse struct {
	ID     core.ID                `json:"request_id"`
	Digest core.Hash              `json:"sample_digest"`
	Result stats.HypothesisResult `json:"result"`
	Report string                 `json:"report"`
}

// ColumnInterval is one column's outcome in a batch. Domain failures such as
// a column too small for Z are recorded per column and do not stop the batch.
type ColumnInterval struct {
	Column string                `json:"column"`
	Result *stats.IntervalResult `json:"result,omitempty"`
	Report string                `json:"report,omitempty"`
	Code   string                `json:"code,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// NewCalculatorService wires a default formatter, an optional sink and the
// batch worker limit
func NewCalculatorService(formatter ports.ReportFormatter, sink ports.ReportSink, workers int) *CalculatorService {
	if formatter == nil {
		formatter = report.New(report.StylePlain)
	}
	if workers < 1 {
		workers = 1
	}
	return &CalculatorService{
		formatter: formatter,
		sink:      sink,
		workers:   int64(workers),
		logger:    internal.DefaultLogger.WithComponent("Calculator"),
	}
}

// WithLogger replaces the service logger
func (s *CalculatorService) WithLogger(logger *internal.Logger) *CalculatorService {
	s.logger = logger.WithComponent("Calculator")
	return s
}

// ComputeInterval parses the data and estimates a two-sided interval
func (s *CalculatorService) ComputeInterval(ctx context.Context, req IntervalRequest) (*IntervalResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	formatter, err := s.formatterFor(req.Style)
	if err != nil {
		return nil, err
	}

	sample, err := inference.Parse(req.Data)
	if err != nil {
		s.logger.Debug("interval input rejected: %v", err)
		return nil, err
	}
	confidence, err := confidenceLevel(req.ConfidencePercent)
	if err != nil {
		return nil, err
	}
	result, err := inference.EstimateInterval(sample, confidence, req.Kind)
	if err != nil {
		s.logger.Debug("interval rejected for n=%d: %v", sample.Len(), err)
		return nil, err
	}

	id := requestID(req.RequestID)
	digest := core.SampleDigest(sample)
	s.logger.Info("interval %s: %s n=%d sample=%s [%g, %g]",
		id, result.Kind, result.Stats.N, digest.Short(), result.LowerBound, result.UpperBound)
	return &IntervalResponse{ID: id, Digest: digest, Result: result, Report: formatter.Interval(result)}, nil
}

// RunTest parses the data and tests the mean against NullValue
func (s *CalculatorService) RunTest(ctx context.Context, req HypothesisRequest) (*HypothesisResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	formatter, err := s.formatterFor(req.Style)
	if err != nil {
		return nil, err
	}

	sample, err := inference.Parse(req.Data)
	if err != nil {
		s.logger.Debug("test input rejected: %v", err)
		return nil, err
	}
	result, err := inference.TestMean(sample, req.NullValue, req.Alpha, req.Direction, req.Kind)
	if err != nil {
		s.logger.Debug("test rejected for n=%d: %v", sample.Len(), err)
		return nil, err
	}

	id := requestID(req.RequestID)
	digest := core.SampleDigest(sample)
	s.logger.Info("test %s: %s %s n=%d sample=%s p=%g rejected=%t",
		id, result.Kind, result.Direction, result.Stats.N, digest.Short(), result.PValue, result.Rejected)
	return &HypothesisResponse{ID: id, Digest: digest, Result: result, Report: formatter.Hypothesis(result)}, nil
}

// SaveReport writes a rendered report through the configured sink
func (s *CalculatorService) SaveReport(ctx context.Context, path, title, body string) (string, error) {
	if s.sink == nil {
		return "", errors.ConfigInvalid("no report sink configured")
	}
	written, err := s.sink.Save(ctx, path, title, body)
	if err != nil {
		return "", err
	}
	s.logger.Info("report saved to %s", written)
	return written, nil
}

// BatchIntervals estimates an interval for every numeric column concurrently.
// Results follow the reader's column order. Reading errors and cancellation
// abort the batch.
func (s *CalculatorService) BatchIntervals(ctx context.Context, reader ports.ColumnReader, confidencePercent float64, kind stats.TestKind) ([]ColumnInterval, error) {
	confidence, err := confidenceLevel(confidencePercent)
	if err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidTestKind, kind)
	}

	columns := reader.NumericColumns()
	results := make([]ColumnInterval, len(columns))
	start := time.Now()
	s.logger.Info("batch of %d columns started (%s, %d workers)", len(columns), kind, s.workers)

	sem := semaphore.NewWeighted(s.workers)
	g, gctx := errgroup.WithContext(ctx)
	for i, column := range columns {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		i, column := i, column
		g.Go(func() error {
			defer sem.Release(1)
			out, err := s.columnInterval(gctx, reader, column, confidence, kind)
			if err != nil {
				return fmt.Errorf("column %q: %w", column, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("batch aborted: %v", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("batch of %d columns finished in %v", len(columns), time.Since(start))
	return results, nil
}

func (s *CalculatorService) columnInterval(ctx context.Context, reader ports.ColumnReader, column string, confidence float64, kind stats.TestKind) (ColumnInterval, error) {
	if err := ctx.Err(); err != nil {
		return ColumnInterval{}, err
	}
	text, err := reader.ColumnText(column)
	if err != nil {
		return ColumnInterval{}, err
	}

	out := ColumnInterval{Column: column}
	sample, err := inference.Parse(text)
	if err == nil {
		var result stats.IntervalResult
		if result, err = inference.EstimateInterval(sample, confidence, kind); err == nil {
			out.Result = &result
			out.Report = s.formatter.Interval(result)
			return out, nil
		}
	}
	out.Code = errors.GetCode(err)
	out.Error = err.Error()
	return out, nil
}

func (s *CalculatorService) formatterFor(style string) (ports.ReportFormatter, error) {
	if style == "" {
		return s.formatter, nil
	}
	parsed, err := report.ParseStyle(style)
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}
	return report.New(parsed), nil
}

func requestID(id core.ID) core.ID {
	if id.IsEmpty() {
		return core.NewID()
	}
	return id
}

// confidenceLevel converts a percentage. Values in (0, 1] read as fractions
// and are refused.
func confidenceLevel(percent float64) (float64, error) {
	if percent > 0 && percent <= 1 {
		return 0, errors.InvalidInput(fmt.Sprintf(
			"confidence is a percentage such as 95, got %s", stats.FormatValue(percent)))
	}
	return inference.ConfidenceFromPercent(percent)
}
