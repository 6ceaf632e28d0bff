// Package report renders inference results as deterministic text.
//
// Every style renders the same intermediate document, so the numbers and
// their precision never differ between plain, decorated and markdown output.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"statcalc/domain/stats"
)

// Fixed precision for rendered numbers
const (
	IntervalDecimals  = 4
	StatisticDecimals = 4
	PValueDecimals    = 6

	// enough to show any level a user types without float noise
	percentDecimals = 10
)

type sectionKind int

const (
	sectionDescriptive sectionKind = iota
	sectionCalculation
	sectionHypotheses
	sectionResult
	sectionDecision
	sectionInterpretation
)

type line struct {
	Label string // empty for free text
	Value string
}

type section struct {
	Kind    sectionKind
	Heading string
	Lines   []line
}

// document is the style-independent form of one report
type document struct {
	Title    string
	Sections []section
	// Rejected is only meaningful for hypothesis reports
	Rejected     bool
	IsHypothesis bool
}

// fixed never renders a negative zero such as "-0.0000"
func fixed(v float64, decimals int) string {
	if math.Abs(v) <= 0.5*math.Pow10(-decimals) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// percent keeps every significant digit of the level, with at least one
// decimal: 0.95 → "95.0%", 0.9996 → "99.96%".
func percent(confidence float64) string {
	s := strconv.FormatFloat(confidence*100, 'f', percentDecimals, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s + "%"
}

func descriptiveSection(d stats.DescriptiveStats) section {
	return section{
		Kind:    sectionDescriptive,
		Heading: "Descriptive statistics",
		Lines: []line{
			{"Sample size (n)", strconv.Itoa(d.N)},
			{"Sample mean", fixed(d.Mean, IntervalDecimals)},
			{"Standard deviation", fixed(d.StdDev, IntervalDecimals)},
			{"Standard error", fixed(d.StandardError, IntervalDecimals)},
		},
	}
}

func intervalDocument(r stats.IntervalResult) document {
	level := percent(r.ConfidenceLevel)
	lower := fixed(r.LowerBound, IntervalDecimals)
	upper := fixed(r.UpperBound, IntervalDecimals)

	calc := []line{
		{"Confidence level", level},
		{"Critical value " + r.Kind.Symbol(), fixed(r.CriticalValue, IntervalDecimals)},
		{"Margin of error", fixed(r.MarginOfError, IntervalDecimals)},
	}
	if r.HasDegreesOfFreedom() {
		calc = append(calc, line{"Degrees of freedom", strconv.Itoa(r.DegreesOfFreedom)})
	}

	return document{
		Title: fmt.Sprintf("CONFIDENCE INTERVAL RESULTS (%s TEST)", string(r.Kind)),
		Sections: []section{
			descriptiveSection(r.Stats),
			{Kind: sectionCalculation, Heading: "Interval calculation", Lines: calc},
			{Kind: sectionResult, Heading: "Confidence interval", Lines: []line{
				{"CI " + level, fmt.Sprintf("[%s, %s]", lower, upper)},
			}},
			{Kind: sectionInterpretation, Heading: "Interpretation", Lines: []line{
				{Value: fmt.Sprintf("With %s confidence, the population mean lies between %s and %s.", level, lower, upper)},
			}},
		},
	}
}

func hypothesisDocument(r stats.HypothesisResult) document {
	nullLabel := stats.NullLabel(r.NullValue)
	alpha := stats.FormatValue(r.Alpha)

	critical := fixed(r.CriticalValue, StatisticDecimals)
	if r.Direction == stats.TwoSided {
		critical = "±" + critical
	}
	calc := []line{
		{r.Kind.Symbol() + " statistic", fixed(r.TestStatistic, StatisticDecimals)},
		{"Critical value (informational)", critical},
		{"p-value", fixed(r.PValue, PValueDecimals)},
		{"Significance level (α)", alpha},
	}
	if r.HasDegreesOfFreedom() {
		calc = append(calc, line{"Degrees of freedom", strconv.Itoa(r.DegreesOfFreedom)})
	}

	decision, conclusion := decisionText(r.Rejected, nullLabel, r.AlternativeLabel)

	return document{
		Title:        fmt.Sprintf("HYPOTHESIS TEST RESULTS (%s TEST)", string(r.Kind)),
		IsHypothesis: true,
		Rejected:     r.Rejected,
		Sections: []section{
			descriptiveSection(r.Stats),
			{Kind: sectionHypotheses, Heading: "Hypotheses", Lines: []line{
				{"H0", nullLabel},
				{"H1", r.AlternativeLabel},
			}},
			{Kind: sectionCalculation, Heading: "Test calculation", Lines: calc},
			{Kind: sectionDecision, Heading: "Decision", Lines: []line{
				{Value: decision},
				{Value: fmt.Sprintf("%s (α = %s)", conclusion, alpha)},
			}},
		},
	}
}

// decisionText derives the verdict purely from the rejection flag and labels
func decisionText(rejected bool, nullLabel, altLabel string) (decision, conclusion string) {
	if rejected {
		return "Reject H0: " + nullLabel, "Evidence in favor of " + altLabel
	}
	return "Fail to reject H0: " + nullLabel, "No evidence for " + altLabel
}
