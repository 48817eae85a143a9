package slog

import (
	"context"
	"log/slog"
	"time"

	"coursetree"
)

// Ensure LoggingUnitStore implements coursetree.UnitStore.
var _ coursetree.UnitStore = (*LoggingUnitStore)(nil)

// LoggingUnitStore wraps a UnitStore with debug logging.
type LoggingUnitStore struct {
	next   coursetree.UnitStore
	logger *slog.Logger
}

// NewLoggingUnitStore creates a new LoggingUnitStore.
func NewLoggingUnitStore(next coursetree.UnitStore, logger *slog.Logger) *LoggingUnitStore {
	return &LoggingUnitStore{next: next, logger: logger}
}

// SaveUnit logs the save and delegates to the wrapped store.
func (s *LoggingUnitStore) SaveUnit(ctx context.Context, unit *coursetree.StoredUnit) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save unit",
			"url", unit.SourceURL,
			"blocks", len(unit.Blocks),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveUnit(ctx, unit)
}

// FindUnitByURL logs the lookup and delegates to the wrapped store.
func (s *LoggingUnitStore) FindUnitByURL(ctx context.Context, sourceURL string) (unit *coursetree.StoredUnit, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find unit",
			"url", sourceURL,
			"found", err == nil,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.FindUnitByURL(ctx, sourceURL)
}

// UnitCount delegates to the wrapped store.
func (s *LoggingUnitStore) UnitCount(ctx context.Context) (int, error) {
	return s.next.UnitCount(ctx)
}
