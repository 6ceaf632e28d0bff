package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"statcalc/internal"
	"statcalc/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	format   Format
	config   ReaderConfig
	logger   *internal.Logger
}

// NewDataReader creates a reader for a CSV or XLSX file on disk
func NewDataReader(filePath string, config ReaderConfig) (*DataReader, error) {
	format, err := DetectFormat(filePath)
	if err != nil {
		return nil, err
	}
	return &DataReader{
		filePath: filePath,
		format:   format,
		config:   config,
		logger:   internal.DefaultLogger.WithComponent("DataReader"),
	}, nil
}

// ReadTable loads the file and classifies its columns
func (r *DataReader) ReadTable() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(string(r.format)), r.filePath))
		}
		return nil, errors.IOError("failed to open "+r.filePath, err)
	}
	defer file.Close()

	return r.read(file, filepath.Base(r.filePath))
}

// ReadTableFrom loads a table from an in-memory upload. The name is only used
// to detect the format.
func ReadTableFrom(src io.Reader, name string, config ReaderConfig) (*Table, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	r := &DataReader{
		filePath: name,
		format:   format,
		config:   config,
		logger:   internal.DefaultLogger.WithComponent("DataReader"),
	}
	return r.read(src, name)
}

func (r *DataReader) read(src io.Reader, source string) (*Table, error) {
	start := time.Now()
	var (
		rows  [][]string
		sheet string
		err   error
	)
	switch r.format {
	case FormatCSV:
		rows, err = readCSVRows(src)
	case FormatXLSX:
		rows, sheet, err = readExcelRows(src, r.config.Sheet)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "cannot read %q", r.format)
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", source, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, ErrNoDataRows
	}
	table := buildTable(rows)
	table.Source = source
	table.Sheet = sheet

	r.logger.Info("%s loaded (%d columns, %d numeric, %d rows)",
		source, len(table.Headers), len(table.numeric), table.Rows)
	return table, nil
}

// readExcelRows reads raw cell values so number formats do not hide numbers
func readExcelRows(src io.Reader, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, "", errors.IOError("failed to open Excel workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", ErrNoDataRows
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, sheet, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, "", errors.IOError("failed to read sheet "+sheet, err)
	}
	return rows, sheet, nil
}

func readCSVRows(src io.Reader) ([][]string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.IOError("failed to read CSV data", err)
	}
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to parse CSV file")
	}
	return rows, nil
}

// buildTable splits off the header row and keeps columns whose non-blank
// cells are all finite numbers
func buildTable(rows [][]string) *Table {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
		if headers[i] == "" {
			headers[i] = columnLetter(i)
		}
	}

	table := &Table{
		Headers: headers,
		Rows:    len(rows) - 1,
		values:  make(map[string][]float64),
	}
	for col, header := range headers {
		if _, dup := table.values[header]; dup {
			continue
		}
		vals, ok := numericColumn(rows[1:], col)
		if !ok {
			continue
		}
		table.numeric = append(table.numeric, header)
		table.values[header] = vals
	}
	return table
}

func numericColumn(rows [][]string, col int) ([]float64, bool) {
	vals := make([]float64, 0, len(rows))
	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, false
		}
		vals = append(vals, v)
	}
	return vals, len(vals) > 0
}

// columnLetter names a header-less column the way spreadsheets do (A, B, ..., AA)
func columnLetter(idx int) string {
	name, err := excelize.ColumnNumberToName(idx + 1)
	if err != nil {
		return "col" + strconv.Itoa(idx+1)
	}
	return name
}
