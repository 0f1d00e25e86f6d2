package layout

import (
	"context"
	"errors"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
	"github.com/staffdesk/staffdesk/internal/settings"
)

var (
	ErrUnknownColumn = errors.New("column is not in the catalog")
	ErrInvalidIndex  = errors.New("reorder index out of range")
)

// Store remembers which columns are visible and in what order, per entity,
// across sessions. Every mutation writes through to the settings store.
type Store struct {
	settings settings.Store
}

func NewStore(s settings.Store) *Store {
	return &Store{settings: s}
}

// Reconcile intersects a persisted column order with the live catalog:
// keys no longer in the catalog are dropped, persisted relative order is
// kept, and an empty result falls back to full catalog order. The returned
// list is always a duplicate-free subsequence of the catalog's keys by
// membership.
func Reconcile(persisted []string, cat *catalog.Catalog) []string {
	seen := make(map[string]bool, len(persisted))
	kept := make([]string, 0, len(persisted))
	for _, key := range persisted {
		if cat.Has(key) && !seen[key] {
			seen[key] = true
			kept = append(kept, key)
		}
	}
	if len(kept) == 0 {
		return cat.Keys()
	}
	return kept
}

// Load returns the current visible column order for the catalog's entity.
func (s *Store) Load(ctx context.Context, cat *catalog.Catalog) ([]string, error) {
	var persisted []string
	if _, err := settings.LoadJSON(ctx, s.settings, cat.Entity.ColumnOrderKey(), &persisted); err != nil {
		return nil, err
	}
	return Reconcile(persisted, cat), nil
}

// Set replaces the visible order outright (the drag-and-drop result from a
// client that reordered the whole list).
func (s *Store) Set(ctx context.Context, cat *catalog.Catalog, fields []string) ([]string, error) {
	order := Reconcile(fields, cat)
	if err := s.persist(ctx, cat, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Toggle adds key to the visible set, or removes it when already visible.
func (s *Store) Toggle(ctx context.Context, cat *catalog.Catalog, key string) ([]string, error) {
	if !cat.Has(key) {
		return nil, ErrUnknownColumn
	}

	order, err := s.Load(ctx, cat)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, len(order)+1)
	removed := false
	for _, k := range order {
		if k == key {
			removed = true
			continue
		}
		next = append(next, k)
	}
	if !removed {
		next = append(next, key)
	}

	if err := s.persist(ctx, cat, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Reorder moves the column at from to position to within the visible list.
func (s *Store) Reorder(ctx context.Context, cat *catalog.Catalog, from, to int) ([]string, error) {
	order, err := s.Load(ctx, cat)
	if err != nil {
		return nil, err
	}
	if from < 0 || from >= len(order) || to < 0 || to >= len(order) {
		return nil, ErrInvalidIndex
	}

	moved := order[from]
	next := append([]string{}, order[:from]...)
	next = append(next, order[from+1:]...)
	next = append(next[:to], append([]string{moved}, next[to:]...)...)

	if err := s.persist(ctx, cat, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Reset restores full catalog order.
func (s *Store) Reset(ctx context.Context, cat *catalog.Catalog) ([]string, error) {
	order := cat.Keys()
	if err := s.persist(ctx, cat, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Store) persist(ctx context.Context, cat *catalog.Catalog, order []string) error {
	return settings.SaveJSON(ctx, s.settings, cat.Entity.ColumnOrderKey(), order)
}
