package coursetree

// ChildKind selects which hierarchy level's children to extract from a
// parent page.
type ChildKind string

// Child kinds, one per parent page type.
const (
	ChildLearningPaths ChildKind = "learning_paths" // from a course page
	ChildModules       ChildKind = "modules"        // from a learning path page
	ChildUnits         ChildKind = "units"          // from a module page
)

// ChildRef is an ordered reference to a child entity discovered on a parent
// page: a human-readable title plus an absolute, fetchable URL.
type ChildRef struct {
	Title string
	URL   string
}

// ChildExtractor discovers child entities from a parent page's markup.
type ChildExtractor interface {
	// ExtractChildren returns the parent page's children in document order,
	// deduplicated by URL with the first occurrence winning. Relative URLs
	// are resolved against baseURL. Absent or unrecognizable child-listing
	// markup yields an empty sequence, not an error.
	ExtractChildren(html string, baseURL string, kind ChildKind) ([]ChildRef, error)

	// ExtractTitle returns the page's own title, or "" if none is found.
	ExtractTitle(html string) string
}
