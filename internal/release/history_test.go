package release

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPath(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)

	assert.Equal(t, filepath.Join(dir, "npmversion-20260304-050607.yaml"), ReportPath(dir, now))
	assert.Equal(t, filepath.Join(dir, "new", "npmversion-20260304-050607.yaml"), ReportPath(filepath.Join(dir, "new")+"/", now))
	assert.Equal(t, filepath.Join(dir, "release.yaml"), ReportPath(filepath.Join(dir, "release.yaml"), now))
}

func TestFindReportsAndSelectStale(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"npmversion-20260101-120000.yaml",
		"npmversion-20260301-120000.yaml",
		"npmversion-20260201-120000.yaml",
		"npmversion-latest.yaml",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("id: x\n"), 0o644))
	}

	reports, err := FindReports(dir)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, filepath.Join(dir, "npmversion-20260101-120000.yaml"), reports[0].Path)
	assert.Equal(t, filepath.Join(dir, "npmversion-20260301-120000.yaml"), reports[2].Path)

	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	stale := SelectStale(reports, 1, 0, now)
	assert.Equal(t, []ReportFile{reports[0], reports[1]}, stale)

	stale = SelectStale(reports, 0, 40*24*time.Hour, now)
	assert.Equal(t, []ReportFile{reports[0]}, stale)

	assert.Empty(t, SelectStale(reports, 5, 0, now))
}

func TestFindReports_MissingDir(t *testing.T) {
	_, err := FindReports(filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "failed to read report directory")
}
