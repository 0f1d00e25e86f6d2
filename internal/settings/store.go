package settings

import (
	"context"
	"encoding/json"
)

// Store is a key/value repository for per-entity view state (column layouts,
// saved favorites, panel field visibility). Values are JSON documents.
//
// Load reports ok=false for missing keys and for values that cannot be read;
// a corrupt value is treated as absent, never as a failure.
type Store interface {
	Load(ctx context.Context, key string) (json.RawMessage, bool, error)
	Save(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
}

// LoadJSON decodes the value at key into out. Missing or undecodable values
// leave out untouched and report ok=false.
func LoadJSON(ctx context.Context, s Store, key string, out interface{}) (bool, error) {
	raw, ok, err := s.Load(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, nil
	}
	return true, nil
}

// SaveJSON encodes value and writes it at key.
func SaveJSON(ctx context.Context, s Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Save(ctx, key, raw)
}
