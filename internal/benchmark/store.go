package benchmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ReportFile describes a saved report.
type ReportFile struct {
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// ReportStore keeps reports as JSON files in one directory.
type ReportStore struct {
	dir string
}

// NewReportStore creates a store rooted at dir. The directory is created on first save.
func NewReportStore(dir string) *ReportStore {
	return &ReportStore{dir: dir}
}

// Dir returns the directory reports are written to.
func (s *ReportStore) Dir() string {
	return s.dir
}

// ReportName returns the file name used for a report of testType generated at t.
func ReportName(testType string, t time.Time) string {
	return fmt.Sprintf("benchmark-%s-%d.json", testType, t.UnixMilli())
}

// Save writes report and returns its file name.
func (s *ReportStore) Save(report *Report) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	name := ReportName(report.TestType, report.GeneratedAt)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return name, nil
}

// List returns saved reports, newest first. A missing directory yields no reports.
func (s *ReportStore) List() ([]ReportFile, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []ReportFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	files := make([]ReportFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ReportFile{
			Filename: e.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Modified.Equal(files[j].Modified) {
			return files[i].Filename > files[j].Filename
		}
		return files[i].Modified.After(files[j].Modified)
	})
	return files, nil
}

// Load reads a saved report.
func (s *ReportStore) Load(name string) (*Report, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", name, err)
	}
	return &report, nil
}

// Delete removes a saved report.
func (s *ReportStore) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrReportNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

func (s *ReportStore) path(name string) (string, error) {
	if err := ValidateReportName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// ValidateReportName accepts bare ".json" file names only.
func ValidateReportName(name string) error {
	if !strings.HasSuffix(name, ".json") ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) ||
		filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidReportName, name)
	}
	return nil
}
