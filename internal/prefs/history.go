package prefs

import (
	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/store"
)

// History is the commandHistory sequence.
type History struct {
	seq *sequence[HistoryEntry]
}

// NewHistory binds history to kv.
func NewHistory(kv store.KV) *History {
	return &History{seq: newSequence[HistoryEntry](kv, store.KeyHistory)}
}

// List returns history entries oldest first.
func (h *History) List() []HistoryEntry { return h.seq.list() }

// Add records a generated command.
func (h *History) Add(command, projectName string, fw catalog.FrameworkID, features []catalog.FeatureID) (HistoryEntry, error) {
	return h.seq.add(func(id string, ts int64) HistoryEntry {
		return HistoryEntry{
			ID:          id,
			Command:     command,
			Timestamp:   ts,
			Framework:   fw,
			Features:    append([]catalog.FeatureID{}, features...),
			ProjectName: projectName,
		}
	})
}

// Remove deletes an entry by id, reporting whether it existed.
func (h *History) Remove(id string) (bool, error) { return h.seq.remove(id) }

// Get finds an entry by id.
func (h *History) Get(id string) (HistoryEntry, bool) { return h.seq.get(id) }

// Clear removes every entry.
func (h *History) Clear() error { return h.seq.clear() }
