package generator

import "github.com/marcus/devsetup/internal/catalog"

// Selection is an ordered set of features. Toggle order is preserved because
// fragment order in the generated command follows it.
type Selection struct {
	ids []catalog.FeatureID
}

// NewSelection builds a selection from ids, dropping duplicates.
func NewSelection(ids ...catalog.FeatureID) *Selection {
	s := &Selection{}
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Toggle appends id when absent and removes it when present. It reports
// whether id is selected afterwards.
func (s *Selection) Toggle(id catalog.FeatureID) bool {
	for i, cur := range s.ids {
		if cur == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return false
		}
	}
	s.ids = append(s.ids, id)
	return true
}

// Has reports whether id is selected.
func (s *Selection) Has(id catalog.FeatureID) bool {
	for _, cur := range s.ids {
		if cur == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the selected ids in order.
func (s *Selection) IDs() []catalog.FeatureID {
	return append([]catalog.FeatureID(nil), s.ids...)
}

// Len returns the number of selected features.
func (s *Selection) Len() int { return len(s.ids) }

// Clear empties the selection.
func (s *Selection) Clear() { s.ids = nil }
