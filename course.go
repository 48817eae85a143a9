package coursetree

import "time"

// Course is the root of the extracted content tree. Its source URL is the
// course's identity; there are no surrogate IDs anywhere in the tree.
type Course struct {
	Title         string          `json:"title"`
	URL           string          `json:"url"`
	ScrapedAt     time.Time       `json:"scraped_at"`
	LearningPaths []*LearningPath `json:"learning_paths"`
	Stats         *Stats          `json:"stats,omitempty"`
}

// LearningPath is a named grouping of modules within a course.
type LearningPath struct {
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Position int       `json:"position"`
	Modules  []*Module `json:"modules"`
}

// Module is a named grouping of units within a learning path.
type Module struct {
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Position int     `json:"position"`
	Units    []*Unit `json:"units"`
}

// Unit is the smallest navigable page of a course. It carries its owning
// module and learning path titles so a flattened per-unit record can be
// produced without walking back up the tree.
type Unit struct {
	Title        string         `json:"title"`
	URL          string         `json:"url"`
	Position     int            `json:"position"`
	LearningPath string         `json:"learning_path"`
	ModuleTitle  string         `json:"module_title"`
	ContentHash  string         `json:"content_hash,omitempty"`
	Blocks       []ContentBlock `json:"blocks"`
}

// Stats holds summary counts computed after traversal. A node that failed
// to fetch contributes its own count but none for its children, so failures
// surface here only as reduced counts.
type Stats struct {
	LearningPaths    int  `json:"learning_paths_count"`
	Modules          int  `json:"total_modules"`
	Units            int  `json:"total_units"`
	ContentExtracted bool `json:"content_extracted"`
}

// Validate returns an error if the course is missing required fields.
func (c *Course) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "course source URL required")
	}
	return nil
}

// Summarize computes summary counts for the course tree.
func Summarize(c *Course, contentExtracted bool) *Stats {
	s := &Stats{ContentExtracted: contentExtracted}
	for _, lp := range c.LearningPaths {
		s.LearningPaths++
		for _, m := range lp.Modules {
			s.Modules++
			s.Units += len(m.Units)
		}
	}
	return s
}
