package favorites

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk/internal/core/catalog"
	"github.com/staffdesk/staffdesk/internal/core/tableview"
	"github.com/staffdesk/staffdesk/internal/core/validation"
	"github.com/staffdesk/staffdesk/internal/settings"
)

var ErrNotFound = errors.New("favorite not found")

// Favorite is an immutable named snapshot of table view state. There is no
// update operation: saving always appends a new entry.
type Favorite struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	SearchTerm    string            `json:"searchTerm"`
	ColumnFilters map[string]string `json:"columnFilters"`
	ColumnSorts   map[string]string `json:"columnSorts"`
	ColumnFields  []string          `json:"columnFields"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ViewState is what applying a favorite restores: engine inputs plus the
// visible column order, all pruned against the current catalog.
type ViewState struct {
	SearchTerm    string            `json:"searchTerm"`
	ColumnFilters map[string]string `json:"columnFilters"`
	Sort          *tableview.Sort   `json:"sort"`
	ColumnFields  []string          `json:"columnFields"`
}

// Store persists named favorites per entity and tracks which one is
// currently applied.
type Store struct {
	settings settings.Store

	mu     sync.Mutex
	active map[catalog.Entity]uuid.UUID
}

func NewStore(s settings.Store) *Store {
	return &Store{settings: s, active: make(map[catalog.Entity]uuid.UUID)}
}

// List returns all saved favorites for an entity, oldest first. The result
// is never nil so it always serializes as a JSON array.
func (s *Store) List(ctx context.Context, entity catalog.Entity) ([]Favorite, error) {
	favs, err := s.load(ctx, entity)
	if err != nil {
		return nil, err
	}
	if favs == nil {
		favs = []Favorite{}
	}
	return favs, nil
}

// Save appends a new favorite. A name that trims to empty is rejected with a
// field-level validation error, not a server failure.
func (s *Store) Save(ctx context.Context, entity catalog.Entity, name string, state ViewState) (*Favorite, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validation.FieldError("name", "name is required")
	}

	favs, err := s.load(ctx, entity)
	if err != nil {
		return nil, err
	}

	fav := Favorite{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(name),
		SearchTerm:    state.SearchTerm,
		ColumnFilters: state.ColumnFilters,
		ColumnSorts:   sortAsMap(state.Sort),
		ColumnFields:  state.ColumnFields,
		CreatedAt:     time.Now().UTC(),
	}

	favs = append(favs, fav)
	if err := settings.SaveJSON(ctx, s.settings, entity.FavoritesKey(), favs); err != nil {
		return nil, err
	}
	return &fav, nil
}

// Apply restores a favorite's view state against the current catalog. Keys
// that no longer exist — fields removed from the schema since the favorite
// was saved — are silently dropped. The search term is carried verbatim.
func (s *Store) Apply(ctx context.Context, entity catalog.Entity, id uuid.UUID, cat *catalog.Catalog) (*ViewState, error) {
	favs, err := s.load(ctx, entity)
	if err != nil {
		return nil, err
	}

	for _, fav := range favs {
		if fav.ID != id {
			continue
		}

		s.mu.Lock()
		s.active[entity] = id
		s.mu.Unlock()

		state := resolve(fav, cat)
		return &state, nil
	}
	return nil, ErrNotFound
}

// Delete removes a favorite by id. Deleting the currently applied favorite
// clears the active selection.
func (s *Store) Delete(ctx context.Context, entity catalog.Entity, id uuid.UUID) error {
	favs, err := s.load(ctx, entity)
	if err != nil {
		return err
	}

	kept := favs[:0]
	found := false
	for _, fav := range favs {
		if fav.ID == id {
			found = true
			continue
		}
		kept = append(kept, fav)
	}
	if !found {
		return ErrNotFound
	}

	if err := settings.SaveJSON(ctx, s.settings, entity.FavoritesKey(), kept); err != nil {
		return err
	}

	s.mu.Lock()
	if s.active[entity] == id {
		delete(s.active, entity)
	}
	s.mu.Unlock()
	return nil
}

// Active returns the id of the currently applied favorite, if any.
func (s *Store) Active(entity catalog.Entity) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.active[entity]
	return id, ok
}

func (s *Store) load(ctx context.Context, entity catalog.Entity) ([]Favorite, error) {
	var favs []Favorite
	if _, err := settings.LoadJSON(ctx, s.settings, entity.FavoritesKey(), &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

// resolve prunes stored keys against the live catalog. Sorts are restored in
// catalog order so that "first non-null direction wins" is deterministic.
func resolve(fav Favorite, cat *catalog.Catalog) ViewState {
	state := ViewState{
		SearchTerm:    fav.SearchTerm,
		ColumnFilters: map[string]string{},
	}

	for key, value := range fav.ColumnFilters {
		if cat.Has(key) {
			state.ColumnFilters[key] = value
		}
	}

	for _, key := range cat.Keys() {
		dir, ok := fav.ColumnSorts[key]
		if !ok || dir == "" {
			continue
		}
		state.Sort = &tableview.Sort{Key: key, Dir: tableview.SortDirection(dir)}
		break
	}

	for _, key := range fav.ColumnFields {
		if cat.Has(key) {
			state.ColumnFields = append(state.ColumnFields, key)
		}
	}

	return state
}

func sortAsMap(s *tableview.Sort) map[string]string {
	if s == nil || s.Key == "" {
		return map[string]string{}
	}
	return map[string]string{s.Key: string(s.Dir)}
}
