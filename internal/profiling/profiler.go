package profiling

import (
	"fmt"

	"statcalc/internal/inference"
	"statcalc/ports"
)

// DataProfiler profiles every numeric column a reader exposes
type DataProfiler struct{}

// NewDataProfiler creates a new data profiler
func NewDataProfiler() *DataProfiler {
	return &DataProfiler{}
}

// ProfileColumn parses the column text the same way inference does and
// summarises it
func (dp *DataProfiler) ProfileColumn(reader ports.ColumnReader, name string) (ColumnProfile, error) {
	text, err := reader.ColumnText(name)
	if err != nil {
		return ColumnProfile{Name: name}, err
	}
	sample, err := inference.Parse(text)
	if err != nil {
		return ColumnProfile{Name: name}, fmt.Errorf("column %q: %w", name, err)
	}
	return Analyze(name, sample)
}

// ProfileTable returns one profile per numeric column, in column order
func (dp *DataProfiler) ProfileTable(reader ports.ColumnReader) ([]ColumnProfile, error) {
	columns := reader.NumericColumns()
	profiles := make([]ColumnProfile, 0, len(columns))
	for _, name := range columns {
		profile, err := dp.ProfileColumn(reader, name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
