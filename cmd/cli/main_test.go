package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"statcalc/internal"
	"statcalc/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"DEFAULT_CONFIDENCE", "DEFAULT_ALPHA", "REPORT_STYLE", "EXCEL_SHEET", "BATCH_WORKERS"} {
		t.Setenv(key, "")
	}
	saved := internal.DefaultLogger
	t.Cleanup(func() { internal.DefaultLogger = saved })

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntervalCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "interval", "--data", "10,12,9,11,13,10,12,11,9,14", "--kind", "t")
	require.NoError(t, err)
	assert.Contains(t, out, "CONFIDENCE INTERVAL RESULTS (T TEST)")
	assert.Contains(t, out, "CI 95.0%: [9.9101, 12.2899]")
}

func TestIntervalCommand_StdinAndJSON(t *testing.T) {
	out, _, err := runCLI(t, "10\n12\n9\n11\n13\n10\n12\n11\n9\n14\n", "interval", "--confidence", "99", "--json")
	require.NoError(t, err)
	assert.Equal(t, 0.99, gjson.Get(out, "result.confidence_level").Float())
	assert.Equal(t, int64(9), gjson.Get(out, "result.degrees_of_freedom").Int())
	assert.NotEmpty(t, gjson.Get(out, "request_id").String())
}

func TestIntervalCommand_FileWithSingleNumericColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("who,score\na,10\nb,12\nc,9\nd,\ne,11\n"), 0o644))

	out, _, err := runCLI(t, "", "interval", "--file", path, "--style", "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# CONFIDENCE INTERVAL RESULTS (T TEST)"))
	assert.Contains(t, out, "- **Sample size (n):** 4")
}

func TestIntervalCommand_Errors(t *testing.T) {
	_, _, err := runCLI(t, "", "interval", "--data", "1,2,3", "--kind", "z")
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))

	_, _, err = runCLI(t, "", "interval", "--data", "1,two,3")
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))

	_, _, err = runCLI(t, "", "interval", "--data", "1,2,3", "--kind", "chi")
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	_, _, err = runCLI(t, "", "interval", "--data", "1,2,3", "--confidence", "0.95")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, _, err = runCLI(t, "", "interval", "--file", "data.parquet")
	assert.Equal(t, errors.CodeUnsupportedFormat, errors.GetCode(err))
}

func TestTestCommand_SaveReport(t *testing.T) {
	target := filepath.Join(t.TempDir(), "decision")
	out, stderr, err := runCLI(t, "", "test",
		"--data", "10,12,9,11,13,10,12,11,9,14",
		"--null", "10", "--direction", "<", "--save", target)
	require.NoError(t, err)
	assert.Contains(t, out, "H1: μ < 10")
	assert.Contains(t, out, "Fail to reject H0: μ = 10")
	assert.Contains(t, stderr, "Report saved to "+target+".txt")

	saved, err := os.ReadFile(target + ".txt")
	require.NoError(t, err)
	assert.Equal(t, "Hypothesis test results\n\n"+out, string(saved))
}

func TestTestCommand_RequiresNull(t *testing.T) {
	_, _, err := runCLI(t, "", "test", "--data", "1,2,3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null")
}

func TestColumnsAndBatchCommands(t *testing.T) {
	rows := []string{"small,big"}
	for i := 1; i <= 40; i++ {
		small := ""
		if i <= 5 {
			small = strconv.Itoa(10 + i)
		}
		rows = append(rows, small+","+strconv.Itoa(i))
	}
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")+"\n"), 0o644))

	out, _, err := runCLI(t, "", "columns", "--file", path, "--json")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.Get(out, "#").Int())
	assert.Equal(t, int64(5), gjson.Get(out, "0.count").Int())
	assert.Equal(t, "T", gjson.Get(out, "0.suggested_kind").String())
	assert.Equal(t, "Z", gjson.Get(out, "1.suggested_kind").String())

	out, _, err = runCLI(t, "", "columns", "--file", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "COLUMN"))
	assert.Contains(t, out, "small")

	out, _, err = runCLI(t, "", "batch", "--file", path, "--kind", "z")
	require.NoError(t, err)
	assert.Contains(t, out, "== small ==\nskipped [VALIDATION_ERROR]")
	assert.Contains(t, out, "== big ==\nCONFIDENCE INTERVAL RESULTS (Z TEST)")
	assert.Contains(t, out, "[16.8772, 24.1228]")
}

func TestHelpTopicsCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "help-topics")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Confidence intervals"))

	out, _, err = runCLI(t, "", "help-topics", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
}
