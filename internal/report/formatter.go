package report

import (
	"fmt"
	"strings"

	"statcalc/domain/stats"
	"statcalc/ports"
)

// Style selects a rendering strategy
type Style string

const (
	StylePlain     Style = "plain"
	StyleDecorated Style = "decorated"
	StyleMarkdown  Style = "markdown"
)

// ParseStyle resolves a style name; empty means plain
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StylePlain:
		return StylePlain, nil
	case StyleDecorated, "emoji":
		return StyleDecorated, nil
	case StyleMarkdown, "md":
		return StyleMarkdown, nil
	}
	return "", fmt.Errorf("unknown report style %q (want plain, decorated or markdown)", s)
}

// renderer turns a document into text
type renderer interface {
	render(doc document) string
}

// Formatter renders results with one style
type Formatter struct {
	style    Style
	renderer renderer
}

var _ ports.ReportFormatter = (*Formatter)(nil)

// New returns a formatter for the given style. Unknown styles fall back to plain.
func New(style Style) *Formatter {
	f := &Formatter{style: style}
	switch style {
	case StyleDecorated:
		f.renderer = decoratedRenderer{}
	case StyleMarkdown:
		f.renderer = markdownRenderer{}
	default:
		f.style = StylePlain
		f.renderer = plainRenderer{}
	}
	return f
}

// Style returns the formatter's style
func (f *Formatter) Style() Style {
	return f.style
}

// Interval renders a confidence interval report
func (f *Formatter) Interval(r stats.IntervalResult) string {
	return f.renderer.render(intervalDocument(r))
}

// Hypothesis renders a hypothesis test report
func (f *Formatter) Hypothesis(r stats.HypothesisResult) string {
	return f.renderer.render(hypothesisDocument(r))
}

var plain = New(StylePlain)

// FormatIntervalReport renders an interval result in the plain style.
func FormatIntervalReport(r stats.IntervalResult) string {
	return plain.Interval(r)
}

// FormatHypothesisReport renders a hypothesis result in the plain style.
func FormatHypothesisReport(r stats.HypothesisResult) string {
	return plain.Hypothesis(r)
}
