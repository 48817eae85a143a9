package coursetree

import (
	"context"
	"time"
)

// StoredUnit is a unit as persisted by a UnitStore, keyed by its source
// URL. The ordered block sequence is retained so a resumed run can rebuild
// the unit's content losslessly.
type StoredUnit struct {
	SourceURL    string
	Title        string
	Position     int
	CourseTitle  string
	LearningPath string
	ModuleTitle  string
	ContentHash  string
	Blocks       []ContentBlock
	ScrapedAt    time.Time
}

// UnitStore persists scraped units. It backs the resume mechanism: a unit
// already present in the store is not refetched on subsequent runs.
type UnitStore interface {
	// SaveUnit inserts or replaces a unit by source URL.
	SaveUnit(ctx context.Context, unit *StoredUnit) error

	// FindUnitByURL retrieves a unit by source URL.
	// Returns ENOTFOUND if the unit does not exist.
	FindUnitByURL(ctx context.Context, sourceURL string) (*StoredUnit, error)

	// UnitCount returns the number of stored units.
	UnitCount(ctx context.Context) (int, error)
}

// Validate returns an error if the stored unit is missing required fields.
func (u *StoredUnit) Validate() error {
	if u.SourceURL == "" {
		return Errorf(EINVALID, "unit source URL required")
	}
	return nil
}
