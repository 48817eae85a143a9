// Package fs writes the run's output artifacts to a directory and reads
// them back for file-based resume.
package fs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"coursetree"
)

var (
	unsafeRe   = regexp.MustCompile(`[^\w\s-]`)
	collapseRe = regexp.MustCompile(`[-\s]+`)
)

// Slugify derives a filesystem-safe slug from a course title. Unsafe
// characters are dropped and runs of whitespace and hyphens collapse to a
// single hyphen.
// Example: "AZ-900: Azure Fundamentals" → "az-900-azure-fundamentals"
func Slugify(title string) string {
	s := unsafeRe.ReplaceAllString(title, "")
	s = collapseRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "course"
	}
	return strings.ToLower(s)
}

// Writer writes a scraped course to disk as three sibling artifacts named
// after the course slug: the nested tree (<slug>_complete.json), the
// flattened per-unit records (<slug>_training.jsonl), and the run summary
// (<slug>_summary.json).
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// TreePath returns the path the nested tree artifact is written to for the
// given course title.
func (w *Writer) TreePath(title string) string {
	return filepath.Join(w.baseDir, Slugify(title)+"_complete.json")
}

// WriteCourse writes all three artifacts and returns the run summary,
// which lists the files created.
func (w *Writer) WriteCourse(course *coursetree.Course, limits coursetree.LimitSet) (*coursetree.RunSummary, error) {
	if err := course.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return nil, coursetree.Errorf(coursetree.EINTERNAL, "creating output directory: %v", err)
	}

	slug := Slugify(course.Title)
	treePath := filepath.Join(w.baseDir, slug+"_complete.json")
	recordsPath := filepath.Join(w.baseDir, slug+"_training.jsonl")
	summaryPath := filepath.Join(w.baseDir, slug+"_summary.json")

	if err := writeJSON(treePath, course); err != nil {
		return nil, err
	}
	if err := writeRecords(recordsPath, coursetree.Flatten(course)); err != nil {
		return nil, err
	}

	summary := &coursetree.RunSummary{
		CourseTitle:  course.Title,
		CourseURL:    course.URL,
		ScrapedAt:    course.ScrapedAt,
		Limits:       limits,
		FilesCreated: []string{treePath, recordsPath, summaryPath},
	}
	if course.Stats != nil {
		summary.LearningPaths = course.Stats.LearningPaths
		summary.TotalModules = course.Stats.Modules
		summary.TotalUnits = course.Stats.Units
		summary.ContentExtracted = course.Stats.ContentExtracted
	}
	if err := writeJSON(summaryPath, summary); err != nil {
		return nil, err
	}

	return summary, nil
}

// LoadCourse reads a previously written nested tree artifact. A missing
// file is an ENOTFOUND error, which the resume path treats as a fresh run.
func LoadCourse(path string) (*coursetree.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, coursetree.Errorf(coursetree.ENOTFOUND, "no saved course at %s", path)
		}
		return nil, coursetree.Errorf(coursetree.EINTERNAL, "reading %s: %v", path, err)
	}

	var course coursetree.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, coursetree.Errorf(coursetree.EINVALID, "parsing %s: %v", path, err)
	}
	return &course, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return coursetree.Errorf(coursetree.EINTERNAL, "encoding %s: %v", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return coursetree.Errorf(coursetree.EINTERNAL, "writing %s: %v", path, err)
	}
	return nil
}

// writeRecords writes one compact JSON object per line.
func writeRecords(path string, records []*coursetree.UnitRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return coursetree.Errorf(coursetree.EINTERNAL, "encoding record for %s: %v", rec.UnitURL, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return coursetree.Errorf(coursetree.EINTERNAL, "writing %s: %v", path, err)
	}
	return nil
}
