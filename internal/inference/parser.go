// Package inference computes one-sample confidence intervals and mean tests.
// Every function is pure: no logging, no shared state, typed errors only.
package inference

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"statcalc/domain/core"
	"statcalc/domain/stats"
)

var (
	delimiters     = strings.NewReplacer("\n", ",", ";", ",", "\t", ",")
	decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
)

// Parse turns delimited text into a sample. Newlines, semicolons, tabs and
// commas all separate values; empty tokens are dropped. A single invalid
// token rejects the whole input.
func Parse(raw string) (stats.Sample, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, core.ErrEmptyInput
	}

	var (
		sample  stats.Sample
		invalid []core.InvalidToken
		index   int
	)
	for _, field := range strings.Split(delimiters.Replace(raw), ",") {
		token := strings.TrimSpace(field)
		if token == "" {
			continue
		}
		if value, reason, ok := parseToken(token); ok {
			sample = append(sample, value)
		} else {
			invalid = append(invalid, core.InvalidToken{Index: index, Text: token, Reason: reason})
		}
		index++
	}

	if len(invalid) > 0 {
		return nil, &core.ParseError{Tokens: invalid}
	}
	if len(sample) == 0 {
		return nil, core.ErrEmptyInput
	}
	return sample, nil
}

func parseToken(token string) (float64, string, bool) {
	if !decimalLiteral.MatchString(token) {
		return 0, "not a decimal number", false
	}
	value, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, "out of floating-point range", false
	}
	return value, "", true
}
