package release

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	reportPrefix     = "npmversion-"
	reportSuffix     = ".yaml"
	reportTimeLayout = "20060102-150405"
)

// ReportPath resolves the --report target. A directory (existing, or
// spelled with a trailing separator) gets a timestamped file name so
// successive runs accumulate a history the cleanup command
// trims with SelectStale.
func ReportPath(target string, now time.Time) string {
	isDir := strings.HasSuffix(target, string(os.PathSeparator)) || strings.HasSuffix(target, "/")
	if !isDir {
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			isDir = true
		}
	}
	if !isDir {
		return target
	}
	return filepath.Join(target, reportPrefix+now.Format(reportTimeLayout)+reportSuffix)
}

// ReportFile is a timestamped report found in a report directory.
type ReportFile struct {
	Path string
	Time time.Time
}

// FindReports lists the timestamped reports of dir, oldest first. Other
// files are ignored.
func FindReports(dir string) ([]ReportFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read report directory: %w", err)
	}

	var reports []ReportFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, reportPrefix) || !strings.HasSuffix(name, reportSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, reportPrefix), reportSuffix)
		at, err := time.ParseInLocation(reportTimeLayout, stamp, time.Local)
		if err != nil {
			continue
		}
		reports = append(reports, ReportFile{Path: filepath.Join(dir, name), Time: at})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Time.Before(reports[j].Time)
	})
	return reports, nil
}

// SelectStale picks the reports to delete: all but the keepLatest newest
// when keepLatest > 0, plus those older than olderThan when it is > 0.
func SelectStale(reports []ReportFile, keepLatest int, olderThan time.Duration, now time.Time) []ReportFile {
	stale := make(map[string]bool)
	if keepLatest > 0 && len(reports) > keepLatest {
		for _, r := range reports[:len(reports)-keepLatest] {
			stale[r.Path] = true
		}
	}
	if olderThan > 0 {
		cutoff := now.Add(-olderThan)
		for _, r := range reports {
			if r.Time.Before(cutoff) {
				stale[r.Path] = true
			}
		}
	}

	var out []ReportFile
	for _, r := range reports {
		if stale[r.Path] {
			out = append(out, r)
		}
	}
	return out
}
