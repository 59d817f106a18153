package prefs

import (
	"strings"

	"github.com/marcus/devsetup/internal/catalog"
	"github.com/marcus/devsetup/internal/store"
)

// Favorites is the favoriteTemplates sequence.
type Favorites struct {
	seq *sequence[Favorite]
}

// NewFavorites binds favorites to kv.
func NewFavorites(kv store.KV) *Favorites {
	return &Favorites{seq: newSequence[Favorite](kv, store.KeyFavorites)}
}

// List returns saved favorites in insertion order.
func (f *Favorites) List() []Favorite { return f.seq.list() }

// Add saves a new favorite and returns it.
func (f *Favorites) Add(name string, fw catalog.FrameworkID, features []catalog.FeatureID) (Favorite, error) {
	return f.seq.add(func(id string, ts int64) Favorite {
		return Favorite{
			ID:        id,
			Name:      name,
			Framework: fw,
			Features:  append([]catalog.FeatureID{}, features...),
			Timestamp: ts,
		}
	})
}

// Remove deletes a favorite by id, reporting whether it existed.
func (f *Favorites) Remove(id string) (bool, error) { return f.seq.remove(id) }

// Get finds a favorite by id.
func (f *Favorites) Get(id string) (Favorite, bool) { return f.seq.get(id) }

// Clear removes every favorite.
func (f *Favorites) Clear() error { return f.seq.clear() }

// HasName reports whether a favorite with this name exists, ignoring case.
func (f *Favorites) HasName(name string) bool {
	for _, fav := range f.List() {
		if strings.EqualFold(fav.Name, name) {
			return true
		}
	}
	return false
}
