package ports

// ColumnReader exposes the numeric columns of an already loaded table.
// ColumnText reduces one column to the delimited text the parser accepts.
type ColumnReader interface {
	NumericColumns() []string
	ColumnText(name string) (string, error)
}
