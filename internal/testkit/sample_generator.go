// Package testkit generates reproducible numeric samples and writes them as
// CSV or XLSX fixtures.
package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ColumnSpec describes one generated numeric column
type ColumnSpec struct {
	Name   string  `json:"name"`
	N      int     `json:"n"` // non-blank values
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	// BlankEvery leaves every k-th cell of the column empty; 0 disables
	BlankEvery int `json:"blank_every"`
}

// SampleGeneratorConfig configures the sample generator
type SampleGeneratorConfig struct {
	Columns []ColumnSpec `json:"columns"`
	// LabelColumn adds a leading text column, as real exports usually have
	LabelColumn string `json:"label_column"`
	Seed        int64  `json:"seed"`
}

// DefaultSampleConfig returns a small survey with a large and a small column
func DefaultSampleConfig() SampleGeneratorConfig {
	return SampleGeneratorConfig{
		Columns: []ColumnSpec{
			{Name: "score", N: 40, Mean: 70, StdDev: 8},
			{Name: "reaction_ms", N: 12, Mean: 350, StdDev: 40, BlankEvery: 3},
		},
		LabelColumn: "respondent",
		Seed:        42,
	}
}

// Dataset is a generated table plus the values each column should yield
type Dataset struct {
	Headers []string
	Cells   [][]string // row-major, without the header row
	Values  map[string][]float64
}

// SampleGenerator draws normal samples from a seeded source
type SampleGenerator struct {
	config SampleGeneratorConfig
	rng    *rand.Rand
}

// NewSampleGenerator creates a generator; equal configs give equal datasets
func NewSampleGenerator(config SampleGeneratorConfig) *SampleGenerator {
	return &SampleGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Normal draws n values from N(mean, sd²)
func (g *SampleGenerator) Normal(n int, mean, sd float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + sd*g.rng.NormFloat64()
	}
	return out
}

// Generate lays out every configured column
func (g *SampleGenerator) Generate() (*Dataset, error) {
	ds := &Dataset{Values: make(map[string][]float64, len(g.config.Columns))}
	var columns [][]string
	if g.config.LabelColumn != "" {
		ds.Headers = append(ds.Headers, g.config.LabelColumn)
		columns = append(columns, nil)
	}

	rows := 0
	for _, spec := range g.config.Columns {
		if spec.Name == "" || spec.N < 0 || spec.StdDev < 0 {
			return nil, fmt.Errorf("invalid column spec %+v", spec)
		}
		values := g.Normal(spec.N, spec.Mean, spec.StdDev)
		cells := make([]string, 0, spec.N)
		for _, v := range values {
			for spec.BlankEvery > 0 && (len(cells)+1)%spec.BlankEvery == 0 {
				cells = append(cells, "")
			}
			cells = append(cells, strconv.FormatFloat(v, 'g', -1, 64))
		}
		ds.Headers = append(ds.Headers, spec.Name)
		ds.Values[spec.Name] = values
		columns = append(columns, cells)
		rows = max(rows, len(cells))
	}

	ds.Cells = make([][]string, rows)
	for r := range ds.Cells {
		row := make([]string, len(columns))
		for c, cells := range columns {
			if c == 0 && g.config.LabelColumn != "" {
				row[c] = fmt.Sprintf("r%03d", r+1)
				continue
			}
			if r < len(cells) {
				row[c] = cells[r]
			}
		}
		ds.Cells[r] = row
	}
	return ds, nil
}

// WriteCSV writes the dataset with a header row
func (ds *Dataset) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(ds.Headers); err != nil {
		return err
	}
	if err := w.WriteAll(ds.Cells); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteXLSX writes the dataset to one worksheet. Numeric cells are stored as
// numbers and blanks are left unset.
func (ds *Dataset) WriteXLSX(path, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return err
		}
	}

	for c, header := range ds.Headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	for r, row := range ds.Cells {
		for c, text := range row {
			if text == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			var value interface{} = text
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				value = v
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}
