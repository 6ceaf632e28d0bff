package testkit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/stat"
)

func TestSampleGenerator_Deterministic(t *testing.T) {
	a, err := NewSampleGenerator(DefaultSampleConfig()).Generate()
	require.NoError(t, err)
	b, err := NewSampleGenerator(DefaultSampleConfig()).Generate()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	cfg := DefaultSampleConfig()
	cfg.Seed = 7
	c, err := NewSampleGenerator(cfg).Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a.Values["score"], c.Values["score"])
}

func TestSampleGenerator_Layout(t *testing.T) {
	ds, err := NewSampleGenerator(DefaultSampleConfig()).Generate()
	require.NoError(t, err)

	assert.Equal(t, []string{"respondent", "score", "reaction_ms"}, ds.Headers)
	assert.Len(t, ds.Values["score"], 40)
	assert.Len(t, ds.Values["reaction_ms"], 12)
	assert.Len(t, ds.Cells, 40)

	// every third reaction cell is blank until the values run out
	assert.Equal(t, "", ds.Cells[2][2])
	assert.NotEqual(t, "", ds.Cells[3][2])
	assert.Equal(t, "", ds.Cells[39][2])
	assert.Equal(t, "r001", ds.Cells[0][0])
}

func TestSampleGenerator_Moments(t *testing.T) {
	g := NewSampleGenerator(SampleGeneratorConfig{Seed: 1})
	values := g.Normal(20000, 50, 5)
	mean, sd := stat.MeanStdDev(values, nil)
	assert.InDelta(t, 50, mean, 0.2)
	assert.InDelta(t, 5, sd, 0.2)
}

func TestSampleGenerator_RejectsBadSpec(t *testing.T) {
	_, err := NewSampleGenerator(SampleGeneratorConfig{Columns: []ColumnSpec{{Name: "x", N: 3, StdDev: -1}}}).Generate()
	assert.Error(t, err)
}

func TestDataset_WriteCSVAndXLSX(t *testing.T) {
	ds, err := NewSampleGenerator(DefaultSampleConfig()).Generate()
	require.NoError(t, err)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "survey.csv")
	require.NoError(t, ds.WriteCSV(csvPath))
	file, err := os.Open(csvPath)
	require.NoError(t, err)
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, ds.Headers, records[0])
	assert.Equal(t, ds.Cells, records[1:])

	xlsxPath := filepath.Join(dir, "survey.xlsx")
	require.NoError(t, ds.WriteXLSX(xlsxPath, "Responses"))
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Responses"}, f.GetSheetList())
	header, err := f.GetCellValue("Responses", "B1")
	require.NoError(t, err)
	assert.Equal(t, "score", header)
}
