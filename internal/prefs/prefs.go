// Package prefs keeps the user's favorites and command history as whole JSON
// sequences in a store.KV.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/store"
)

// Favorite is a saved (framework, features) configuration.
type Favorite struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Framework catalog.FrameworkID `json:"framework"`
	Features  []catalog.FeatureID `json:"features"`
	Timestamp int64               `json:"timestamp"`
}

// HistoryEntry records a generated command.
type HistoryEntry struct {
	ID          string              `json:"id"`
	Command     string              `json:"command"`
	Timestamp   int64               `json:"timestamp"`
	Framework   catalog.FrameworkID `json:"framework"`
	Features    []catalog.FeatureID `json:"features"`
	ProjectName string              `json:"projectName"`
}

// Time returns the entry time.
func (f Favorite) Time() time.Time { return time.UnixMilli(f.Timestamp) }

// Time returns the entry time.
func (h HistoryEntry) Time() time.Time { return time.UnixMilli(h.Timestamp) }

func (f Favorite) key() string     { return f.ID }
func (h HistoryEntry) key() string { return h.ID }

type entry interface {
	Favorite | HistoryEntry
	key() string
}

// sequence is an ordered list of entries stored whole under one key.
type sequence[T entry] struct {
	kv  store.KV
	key string
	now func() time.Time

	mu     sync.Mutex
	lastID int64
}

// load returns the stored entries. A missing key or a malformed value
// yields an empty list; the latter is logged. Read errors are returned.
func (s *sequence[T]) load() ([]T, error) {
	var items []T
	if _, err := store.GetJSON(s.kv, s.key, &items); err != nil {
		if errors.Is(err, store.ErrDecode) {
			slog.Warn("ignoring malformed preferences", "key", s.key, "err", err)
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	return items, nil
}

// list is load for read-only callers: a read error shows as an empty list.
func (s *sequence[T]) list() []T {
	items, err := s.load()
	if err != nil {
		slog.Warn("reading preferences", "key", s.key, "err", err)
	}
	return items
}

func (s *sequence[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	return store.SetJSON(s.kv, s.key, items)
}

// add builds a new entry with a fresh id and appends it. Ids are unix
// milliseconds, bumped past earlier ids so entries created within the same
// millisecond stay distinct.
func (s *sequence[T]) add(build func(id string, ts int64) T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		var zero T
		return zero, err
	}
	taken := make(map[string]bool, len(items))
	for _, it := range items {
		taken[it.key()] = true
	}
	ts := s.now().UnixMilli()
	id := max(ts, s.lastID+1)
	for taken[strconv.FormatInt(id, 10)] {
		id++
	}
	s.lastID = id

	it := build(strconv.FormatInt(id, 10), ts)
	if err := s.save(append(items, it)); err != nil {
		var zero T
		return zero, err
	}
	return it, nil
}

// appendAll adds already-built entries, skipping ids that are present.
func (s *sequence[T]) appendAll(in []T) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return 0, err
	}
	taken := make(map[string]bool, len(items))
	for _, it := range items {
		taken[it.key()] = true
	}
	added := 0
	for _, it := range in {
		if taken[it.key()] {
			continue
		}
		taken[it.key()] = true
		items = append(items, it)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.save(items)
}

// remove filters out id and reports whether anything was removed.
func (s *sequence[T]) remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return false, err
	}
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if it.key() != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, s.save(kept)
}

func (s *sequence[T]) get(id string) (T, bool) {
	for _, it := range s.list() {
		if it.key() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (s *sequence[T]) clear() error {
	return s.kv.Delete(s.key)
}

func newSequence[T entry](kv store.KV, key string) *sequence[T] {
	return &sequence[T]{kv: kv, key: key, now: time.Now}
}
