package coursetree

import "time"

// UnitRecord is one self-contained record per unit, carrying denormalized
// ancestor titles for line-oriented consumption. The JSON key names,
// nesting, and per-field types are a hard external contract consumed by a
// separate document-generation workflow; do not change them.
type UnitRecord struct {
	CourseTitle  string    `json:"course_title"`
	LearningPath string    `json:"learning_path"`
	ModuleTitle  string    `json:"module_title"`
	UnitTitle    string    `json:"unit_title"`
	UnitURL      string    `json:"unit_url"`
	Content      string    `json:"content"`
	Headings     []Heading `json:"headings"`
	CodeBlocks   []string  `json:"code_blocks"`
	Images       []Image   `json:"images"`
	ScrapedAt    time.Time `json:"scraped_at"`
}

// RunSummary is the summary artifact produced per run. It is derivable from
// the tree but kept as its own explicit output for downstream reporting.
type RunSummary struct {
	CourseTitle      string    `json:"course_title"`
	CourseURL        string    `json:"course_url"`
	ScrapedAt        time.Time `json:"scraped_at"`
	LearningPaths    int       `json:"learning_paths_count"`
	TotalModules     int       `json:"total_modules"`
	TotalUnits       int       `json:"total_units"`
	ContentExtracted bool      `json:"content_extracted"`
	Limits           LimitSet  `json:"limits_applied"`
	FilesCreated     []string  `json:"files_created"`
}

// LimitSet records the child-count caps applied during a run.
// A zero value means unlimited.
type LimitSet struct {
	MaxPaths          int `json:"max_paths"`
	MaxModulesPerPath int `json:"max_modules_per_path"`
	MaxUnitsPerModule int `json:"max_units_per_module"`
}
