package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/zrecon/internal/report"
	"github.com/cleared-dev/zrecon/internal/runlog"
)

func TestReconcile_Directory(t *testing.T) {
	dir := t.TempDir()
	copyTestdata(t, dir)
	writeZReports(t, dir)

	export := filepath.Join(dir, "out", "jan.csv")
	out, err := runZrecon(t, "reconcile", dir, "--export", export)
	require.NoError(t, err, out)
	assert.NotContains(t, out, "FAILED")

	f, err := os.Open(export)
	require.NoError(t, err)
	defer f.Close()
	rows, err := report.ReadCSV(f)
	require.NoError(t, err)

	want := []struct {
		date, bank, nonCash, corr, result string
	}{
		{"01.01.2025", "0.00", "0.00", "100.00", "100.00"},
		{"02.01.2025", "1515.00", "1515.00", "50.00", "1555.00"},
		{"03.01.2025", "503.00", "503.00", "20.00", "523.00"},
		{"04.01.2025", "112.50", "112.50", "0.00", "112.50"},
	}
	require.Len(t, rows, len(want))
	for i, w := range want {
		assert.Equal(t, w.date, rows[i].Date.String())
		assert.Equal(t, w.bank, rows[i].BankSum.StringFixed(2), w.date)
		assert.Equal(t, w.nonCash, rows[i].ZSumNonCash.StringFixed(2), w.date)
		assert.Equal(t, w.corr, rows[i].CashCorrection.StringFixed(2), w.date)
		assert.Equal(t, w.result, rows[i].Result.StringFixed(2), w.date)
		assert.Contains(t, out, w.result)
	}
}

func TestReconcile_Project(t *testing.T) {
	dir := t.TempDir()
	_, err := runZrecon(t, "init", dir)
	require.NoError(t, err)
	copyTestdata(t, filepath.Join(dir, "import"))
	writeZReports(t, filepath.Join(dir, "import"))

	out, err := runZrecon(t, "reconcile", dir, "--workers", "2")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Exported to "+filepath.Join(dir, "reconciliation.xlsx"))

	_, err = os.Stat(filepath.Join(dir, "reconciliation.xlsx"))
	require.NoError(t, err)

	entries, err := runlog.Read(filepath.Join(dir, "logs", "run-log.csv"))
	require.NoError(t, err)
	require.Len(t, entries, 6)
	statuses := make(map[string]string)
	for _, e := range entries {
		statuses[e.File] = string(e.Status)
	}
	assert.Equal(t, "ignored", statuses["Реєстр_платежів_jan.csv"])
	assert.Equal(t, "normalized", statuses["2600123456789012.csv"])
	assert.Equal(t, "normalized", statuses["zreports_jan.xlsx"])
}

func TestReconcile_FailedFile(t *testing.T) {
	dir := t.TempDir()
	copyTestdata(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mystery.csv"), []byte("a,b\n"), 0o644))

	out, err := runZrecon(t, "reconcile", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "FAILED mystery.csv")
	assert.Contains(t, out, "04.01.2025")

	out, err = runZrecon(t, "reconcile", dir, "--strict")
	require.Error(t, err)
	assert.Contains(t, out, "1 of 6 files failed")
}

func TestReconcile_Empty(t *testing.T) {
	dir := t.TempDir()
	out, err := runZrecon(t, "reconcile", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "No input files")
}

func TestReconcile_BadConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zrecon.yaml"),
		[]byte("formats:\n  - pattern: 'x'\n    format: quickbooks\n"), 0o644))

	out, err := runZrecon(t, "reconcile", dir)
	require.Error(t, err)
	assert.Contains(t, out, `unknown format "quickbooks"`)
}

func TestReconcile_JSONLogs(t *testing.T) {
	dir := t.TempDir()
	copyTestdata(t, dir)

	out, err := runZrecon(t, "reconcile", dir, "--log-json", "--log-level", "debug")
	require.NoError(t, err, out)

	var found bool
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "{") && strings.Contains(line, `"message":"reconciliation complete"`) {
			found = true
		}
	}
	assert.True(t, found, "expected JSON log line in:\n%s", out)
}

func TestReconcile_BadLogLevel(t *testing.T) {
	out, err := runZrecon(t, "reconcile", t.TempDir(), "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, out, "parsing log level")
}
