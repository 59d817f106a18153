// Package store persists small JSON documents under string keys.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode marks a stored value that could not be decoded. Storage failures
// are never wrapped with it.
var ErrDecode = errors.New("malformed stored value")

// Persisted keys.
const (
	KeyHistory   = "commandHistory"
	KeyFavorites = "favoriteTemplates"
	KeyUser      = "devsetup_user"
)

// KV is a string key-value store. Get reports whether the key was present.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// GetJSON decodes the value under key into v. It returns false when the key
// is absent. Decode failures wrap ErrDecode so callers can tell them apart
// from read errors.
func GetJSON(kv KV, key string, v any) (bool, error) {
	raw, ok, err := kv.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %s: %w: %w", key, ErrDecode, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(key, string(data))
}
