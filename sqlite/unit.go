package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"coursetree"
)

// Compile-time interface verification.
var _ coursetree.UnitStore = (*UnitService)(nil)

// UnitService implements coursetree.UnitStore using SQLite.
type UnitService struct {
	db *DB
}

// NewUnitService creates a new UnitService.
func NewUnitService(db *DB) *UnitService {
	return &UnitService{db: db}
}

// SaveUnit inserts or replaces a unit by source URL.
func (s *UnitService) SaveUnit(ctx context.Context, unit *coursetree.StoredUnit) error {
	if err := unit.Validate(); err != nil {
		return err
	}

	blocks, err := json.Marshal(unit.Blocks)
	if err != nil {
		return coursetree.Errorf(coursetree.EINTERNAL, "encoding blocks for %s: %v", unit.SourceURL, err)
	}

	scrapedAt := unit.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO units (source_url, title, position, course_title, learning_path, module_title, content_hash, blocks, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_url) DO UPDATE SET
			title = excluded.title,
			position = excluded.position,
			course_title = excluded.course_title,
			learning_path = excluded.learning_path,
			module_title = excluded.module_title,
			content_hash = excluded.content_hash,
			blocks = excluded.blocks,
			scraped_at = excluded.scraped_at
	`, unit.SourceURL, unit.Title, unit.Position, unit.CourseTitle, unit.LearningPath,
		unit.ModuleTitle, unit.ContentHash, string(blocks), scrapedAt.Format(time.RFC3339))

	return err
}

// FindUnitByURL retrieves a unit by source URL.
func (s *UnitService) FindUnitByURL(ctx context.Context, sourceURL string) (*coursetree.StoredUnit, error) {
	var unit coursetree.StoredUnit
	var blocks string
	var scrapedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT source_url, title, position, course_title, learning_path, module_title, content_hash, blocks, scraped_at
		FROM units
		WHERE source_url = ?
	`, sourceURL).Scan(&unit.SourceURL, &unit.Title, &unit.Position, &unit.CourseTitle,
		&unit.LearningPath, &unit.ModuleTitle, &unit.ContentHash, &blocks, &scrapedAt)

	if err == sql.ErrNoRows {
		return nil, coursetree.Errorf(coursetree.ENOTFOUND, "unit not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(blocks), &unit.Blocks); err != nil {
		return nil, fmt.Errorf("failed to parse blocks: %w", err)
	}
	if unit.Blocks == nil {
		unit.Blocks = []coursetree.ContentBlock{}
	}

	unit.ScrapedAt, err = time.Parse(time.RFC3339, scrapedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scraped_at: %w", err)
	}

	return &unit, nil
}

// UnitCount returns the number of stored units.
func (s *UnitService) UnitCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM units`).Scan(&n)
	return n, err
}
