package filesystem

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"statcalc/internal/errors"
	"statcalc/ports"
)

// DefaultExtension is appended when a report path has no extension
const DefaultExtension = ".txt"

// ReportWriter saves formatted reports as UTF-8 text files
type ReportWriter struct {
	BaseDir string // relative paths are resolved against it; empty means cwd
}

var _ ports.ReportSink = (*ReportWriter)(nil)

// NewReportWriter creates a writer rooted at baseDir
func NewReportWriter(baseDir string) *ReportWriter {
	return &ReportWriter{BaseDir: baseDir}
}

// Save writes title, a blank line and the report body. It returns the path
// actually written.
func (w *ReportWriter) Save(ctx context.Context, path, title, body string) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", errors.InvalidInput("no report to save")
	}
	if strings.TrimSpace(path) == "" {
		return "", errors.InvalidInput("report path is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := w.resolve(path)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", errors.IOError("failed to create report directory", err)
	}

	file, err := os.Create(target)
	if err != nil {
		return "", errors.IOError(fmt.Sprintf("failed to create report file %q", target), err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	if _, err := buf.WriteString(title + "\n\n" + body); err != nil {
		return "", errors.IOError("failed to write report", err)
	}
	if err := buf.Flush(); err != nil {
		return "", errors.IOError("failed to write report", err)
	}
	if err := file.Sync(); err != nil {
		return "", errors.IOError("failed to write report", err)
	}
	return target, nil
}

func (w *ReportWriter) resolve(path string) string {
	if filepath.Ext(path) == "" {
		path += DefaultExtension
	}
	if w.BaseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(w.BaseDir, path)
	}
	return path
}
