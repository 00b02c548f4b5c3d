package benchmark

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(testType string, at time.Time) *Report {
	return &Report{
		RunID:    "run-1",
		TestType: testType,
		Summary: Summary{
			Providers:  map[string]*ProviderStats{"gemini": {Count: 1, AvgResponseTime: 120, SuccessRate: 1}},
			TotalTests: 1,
			Timestamp:  at,
		},
		DetailedResults: []Record{{ID: "r1", Provider: "gemini", TestName: "Simple Question", Success: true, RelevantDocs: []string{}}},
		GeneratedAt:     at,
	}
}

func TestReportStore_SaveLoadDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "benchmarks")
	store := NewReportStore(dir)
	at := time.UnixMilli(1700000000123).UTC()

	name, err := store.Save(sampleReport(TestQuick, at))
	require.NoError(t, err)
	assert.Equal(t, "benchmark-quick-1700000000123.json", name)

	loaded, err := store.Load(name)
	require.NoError(t, err)
	assert.Equal(t, "run-1", loaded.RunID)
	assert.Equal(t, 120.0, loaded.Summary.Providers["gemini"].AvgResponseTime)
	require.Len(t, loaded.DetailedResults, 1)
	assert.Equal(t, "Simple Question", loaded.DetailedResults[0].TestName)

	require.NoError(t, store.Delete(name))
	_, err = store.Load(name)
	assert.ErrorIs(t, err, ErrReportNotFound)
	assert.ErrorIs(t, store.Delete(name), ErrReportNotFound)
}

func TestReportStore_ListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	store := NewReportStore(dir)

	older, err := store.Save(sampleReport(TestFull, time.UnixMilli(1000)))
	require.NoError(t, err)
	newer, err := store.Save(sampleReport(TestQuick, time.UnixMilli(2000)))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, older), past, past))

	files, err := store.List()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, newer, files[0].Filename)
	assert.Equal(t, older, files[1].Filename)
	assert.Positive(t, files[0].Size)
}

func TestReportStore_ListMissingDir(t *testing.T) {
	store := NewReportStore(filepath.Join(t.TempDir(), "absent"))

	files, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestValidateReportName(t *testing.T) {
	valid := []string{"benchmark-quick-1.json", "x.json"}
	for _, name := range valid {
		assert.NoError(t, ValidateReportName(name), name)
	}

	invalid := []string{"", "report.txt", "../secret.json", "sub/dir.json", `sub\dir.json`, "..json"}
	for _, name := range invalid {
		assert.ErrorIs(t, ValidateReportName(name), ErrInvalidReportName, name)
	}

	store := NewReportStore(t.TempDir())
	_, err := store.Load("../../etc/passwd.json")
	assert.ErrorIs(t, err, ErrInvalidReportName)
}
