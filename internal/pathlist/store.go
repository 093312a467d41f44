package pathlist

import (
	"strings"

	"pathedit/internal/errors"
	"pathedit/internal/model"
)

// Store is the in-memory, editable PATH list of one scope together with the
// registry subtype it was read as. It is not safe for concurrent use; callers
// hand Snapshot to any write path instead of the live store.
type Store struct {
	scope    model.Scope
	entries  []string
	encoding model.ValueEncoding
	selected Selection
	filter   string
	dirty    bool
}

// Snapshot is an immutable copy of a store's list for the write path.
type Snapshot struct {
	Scope    model.Scope
	Entries  []string
	Encoding model.ValueEncoding
}

// Raw is the serialized PATH value of the snapshot.
func (s Snapshot) Raw() string {
	return Join(s.Entries)
}

// NewStore builds a store from a raw PATH value as read from the registry.
func NewStore(scope model.Scope, raw string, encoding model.ValueEncoding) *Store {
	s := &Store{scope: scope}
	s.Load(raw, encoding)
	return s
}

// Load replaces the list with raw and resets selection and dirty state.
// The filter is kept; it belongs to the view.
func (s *Store) Load(raw string, encoding model.ValueEncoding) {
	s.entries = Split(raw)
	s.encoding = encoding
	s.selected = Selection{}
	s.dirty = false
}

func (s *Store) Scope() model.Scope { return s.scope }
func (s *Store) Encoding() model.ValueEncoding { return s.encoding }
func (s *Store) Len() int { return len(s.entries) }
func (s *Store) Dirty() bool { return s.dirty }
func (s *Store) Filter() string { return s.filter }
func (s *Store) Entry(i int) string { return s.entries[i] }
func (s *Store) Entries() []string { return append([]string(nil), s.entries...) }
func (s *Store) Raw() string { return Join(s.entries) }
func (s *Store) Selected() []int { return s.selected.Sorted() }
func (s *Store) IsSelected(i int) bool { return s.selected.Has(i) }
func (s *Store) VisiblePositions() []int { return VisiblePositions(s.entries, s.filter) }
func (s *Store) Filtering() bool { return strings.TrimSpace(s.filter) != "" }
func (s *Store) SetFilter(filter string) { s.filter = filter }
func (s *Store) ClearSelection() { s.selected = Selection{} }
func (s *Store) SetSelection(positions ...int) { s.selected = s.validSelection(positions) }

// Snapshot copies the list for a write.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Scope: s.scope, Entries: s.Entries(), Encoding: s.encoding}
}

// MarkSaved records the encoding a successful write used and clears the
// dirty flag. The list itself is unchanged.
func (s *Store) MarkSaved(encoding model.ValueEncoding) {
	s.encoding = encoding
	s.dirty = false
}

// Select makes position i the only selected position.
func (s *Store) Select(i int) {
	s.selected = s.validSelection([]int{i})
}

// Toggle adds or removes position i from the selection.
func (s *Store) Toggle(i int) {
	if i < 0 || i >= len(s.entries) {
		return
	}
	if s.selected.Has(i) {
		delete(s.selected, i)
		return
	}
	s.selected[i] = struct{}{}
}

// Add appends text as a new entry. Blank text is ignored.
func (s *Store) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	s.entries = append(s.entries, text)
	s.dirty = true
	return true
}

// Remove deletes the selected entries and returns how many were removed.
func (s *Store) Remove() int {
	if len(s.selected) == 0 {
		return 0
	}
	kept := make([]string, 0, len(s.entries))
	for i, e := range s.entries {
		if !s.selected.Has(i) {
			kept = append(kept, e)
		}
	}
	removed := len(s.entries) - len(kept)
	s.entries = kept
	s.selected = Selection{}
	s.dirty = s.dirty || removed > 0
	return removed
}

// Move shifts the selected entries one step. It is refused while a filter is
// active: filtered positions are not contiguous in the real list.
func (s *Store) Move(dir Direction) error {
	if s.Filtering() {
		return errors.New(errors.ErrMoveFiltered, "Clear the filter before moving entries.")
	}
	if len(s.selected) == 0 {
		return nil
	}
	entries, selected := MovePositions(s.entries, s.selected, dir)
	for i := range entries {
		if entries[i] != s.entries[i] {
			s.dirty = true
			break
		}
	}
	s.entries, s.selected = entries, selected
	return nil
}

// Dedupe removes entries whose compare key was already seen and returns the
// number removed.
func (s *Store) Dedupe(lookup LookupFunc) int {
	before := len(s.entries)
	s.entries = DedupeFunc(s.entries, lookup)
	s.selected = Selection{}
	removed := before - len(s.entries)
	s.dirty = s.dirty || removed > 0
	return removed
}

// Sort orders the list case-insensitively.
func (s *Store) Sort() {
	before := s.Entries()
	Sort(s.entries)
	s.selected = Selection{}
	for i := range before {
		if before[i] != s.entries[i] {
			s.dirty = true
			break
		}
	}
}

// Expanded returns every entry with its tokens resolved, in list order.
func (s *Store) Expanded(lookup LookupFunc) []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = ExpandFunc(e, lookup)
	}
	return out
}

func (s *Store) validSelection(positions []int) Selection {
	sel := Selection{}
	for _, p := range positions {
		if p >= 0 && p < len(s.entries) {
			sel[p] = struct{}{}
		}
	}
	return sel
}

func containsFold(s, foldedNeedle string) bool {
	return strings.Contains(fold(s), foldedNeedle)
}
