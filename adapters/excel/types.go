package excel

import (
	"fmt"
	"strconv"
	"strings"

	"statcalc/ports"
)

// Table is a loaded spreadsheet reduced to its numeric columns. Blank cells
// are dropped, so columns can have different lengths.
type Table struct {
	Source  string      // file name the table was read from
	Sheet   string      // sheet name for workbooks, empty for CSV
	Headers []string    // every header in file order
	Rows    int         // data rows below the header
	numeric []string    // numeric headers in file order
	values  map[string][]float64
}

var _ ports.ColumnReader = (*Table)(nil)

// NumericColumns returns the headers whose non-blank cells are all numbers
func (t *Table) NumericColumns() []string {
	out := make([]string, len(t.numeric))
	copy(out, t.numeric)
	return out
}

// Values returns the finite values of a numeric column in row order
func (t *Table) Values(name string) ([]float64, error) {
	vals, ok := t.values[name]
	if !ok {
		return nil, t.unknownColumn(name)
	}
	out := make([]float64, len(vals))
	copy(out, vals)
	return out, nil
}

// ColumnText renders a numeric column as the comma-joined text accepted by
// the numeric parser
func (t *Table) ColumnText(name string) (string, error) {
	vals, err := t.Values(name)
	if err != nil {
		return "", err
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ","), nil
}

// SelectColumn resolves the column to analyse. An empty name is accepted only
// when the table has exactly one numeric column.
func (t *Table) SelectColumn(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		if _, ok := t.values[name]; !ok {
			return "", t.unknownColumn(name)
		}
		return name, nil
	}
	switch len(t.numeric) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrNoNumericColumns, t.Source)
	case 1:
		return t.numeric[0], nil
	}
	return "", fmt.Errorf("%w: choose one of %s", ErrAmbiguousColumn, strings.Join(t.numeric, ", "))
}

func (t *Table) unknownColumn(name string) error {
	for _, h := range t.Headers {
		if h == name {
			return fmt.Errorf("%w: %q is not numeric", ErrColumnNotFound, name)
		}
	}
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}
