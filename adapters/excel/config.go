package excel

import (
	"path/filepath"
	"strings"

	"statcalc/internal/errors"
)

// Format identifies a supported tabular file type
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	ErrUnsupportedFormat = errors.New(errors.CodeUnsupportedFormat, "unsupported file format")
	ErrSheetNotFound     = errors.New(errors.CodeNotFound, "sheet not found")
	ErrColumnNotFound    = errors.New(errors.CodeNotFound, "numeric column not found")
	ErrNoNumericColumns  = errors.New(errors.CodeInvalidInput, "no numeric columns")
	ErrAmbiguousColumn   = errors.New(errors.CodeInvalidInput, "several numeric columns")
	ErrNoDataRows        = errors.New(errors.CodeInvalidInput, "file must have a header row and at least one data row")
)

// ReaderConfig holds options for loading a table
type ReaderConfig struct {
	Sheet string `json:"sheet"` // empty selects the first sheet
}

// DefaultReaderConfig reads the first sheet
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{}
}

// DetectFormat maps a file name to its format by extension
func DetectFormat(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	if ext == "" {
		ext = "(none)"
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "cannot read %s files", ext)
}
