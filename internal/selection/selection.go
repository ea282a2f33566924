// internal/selection/selection.go
//
// Tracks which conflicts are checked for batch action. Selection is scoped
// to the currently loaded page: whenever the list is refetched the set is
// cleared, so a batch can never act on conflicts that are no longer
// visible.

package selection

// Set holds the batch-selected conflict ids for the loaded page.
type Set struct {
	visible  []string
	selected map[string]struct{}
}

// New returns an empty selection with no visible conflicts.
func New() *Set {
	return &Set{selected: map[string]struct{}{}}
}

// SetVisible replaces the loaded page and clears the selection. Called on
// every list refetch, including filter, sort, and search changes.
func (s *Set) SetVisible(ids []string) {
	s.visible = append(s.visible[:0:0], ids...)
	s.selected = map[string]struct{}{}
}

// Visible returns the ids on the loaded page, in list order.
func (s *Set) Visible() []string {
	return append([]string(nil), s.visible...)
}

// Toggle flips one conflict in or out of the selection. Ids that are not on
// the loaded page are ignored, keeping the subset invariant.
func (s *Set) Toggle(id string) {
	if !s.isVisible(id) {
		return
	}
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// ToggleAll selects every visible conflict unless all are already selected,
// in which case it clears the selection. A pure toggle of the
// "all selected" predicate.
func (s *Set) ToggleAll() {
	if s.AllSelected() {
		s.Clear()
		return
	}
	for _, id := range s.visible {
		s.selected[id] = struct{}{}
	}
}

// Clear empties the selection without touching the visible list.
func (s *Set) Clear() {
	s.selected = map[string]struct{}{}
}

// Selected reports whether one conflict is checked.
func (s *Set) Selected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// IDs returns the selected ids in loaded-list order.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.selected))
	for _, id := range s.visible {
		if s.Selected(id) {
			out = append(out, id)
		}
	}
	return out
}

// Count returns how many conflicts are selected.
func (s *Set) Count() int {
	return len(s.selected)
}

// Empty reports whether nothing is selected. Batch-action affordances are
// enabled only when this is false.
func (s *Set) Empty() bool {
	return len(s.selected) == 0
}

// AllSelected reports whether every visible conflict is selected. False
// when the page is empty.
func (s *Set) AllSelected() bool {
	if len(s.visible) == 0 {
		return false
	}
	return len(s.selected) == len(s.visible)
}

func (s *Set) isVisible(id string) bool {
	for _, v := range s.visible {
		if v == id {
			return true
		}
	}
	return false
}
