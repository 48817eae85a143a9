package mock

import (
	"context"

	"coursetree"
)

var _ coursetree.UnitStore = (*UnitStore)(nil)

// UnitStore is a mock implementation of coursetree.UnitStore.
type UnitStore struct {
	SaveUnitFn      func(ctx context.Context, unit *coursetree.StoredUnit) error
	FindUnitByURLFn func(ctx context.Context, sourceURL string) (*coursetree.StoredUnit, error)
	UnitCountFn     func(ctx context.Context) (int, error)
}

func (s *UnitStore) SaveUnit(ctx context.Context, unit *coursetree.StoredUnit) error {
	return s.SaveUnitFn(ctx, unit)
}

func (s *UnitStore) FindUnitByURL(ctx context.Context, sourceURL string) (*coursetree.StoredUnit, error) {
	return s.FindUnitByURLFn(ctx, sourceURL)
}

func (s *UnitStore) UnitCount(ctx context.Context) (int, error) {
	if s.UnitCountFn != nil {
		return s.UnitCountFn(ctx)
	}
	return 0, nil
}
