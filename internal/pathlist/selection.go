package pathlist

import (
	"sort"
	"strings"
)

// Selection is a set of list positions.
type Selection map[int]struct{}

// NewSelection builds a selection from positions.
func NewSelection(positions ...int) Selection {
	s := make(Selection, len(positions))
	for _, p := range positions {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether position p is selected.
func (s Selection) Has(p int) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the selected positions in ascending order.
func (s Selection) Sorted() []int {
	out := make([]int, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Direction is the way a move shifts selected entries.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// MovePositions shifts every selected entry one step in dir and returns the
// new list and the positions the selected entries now occupy. Entries are
// visited leading edge first; one stays put when it is at the edge or the
// slot it would move into holds a selected entry, so a contiguous block
// moves as a unit. entries is not modified.
func MovePositions(entries []string, selected Selection, dir Direction) ([]string, Selection) {
	out := append([]string(nil), entries...)
	moved := make(Selection, len(selected))
	for p := range selected {
		moved[p] = struct{}{}
	}

	order := selected.Sorted()
	if dir == Down {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	for _, p := range order {
		q := p + int(dir)
		if p < 0 || p >= len(out) || q < 0 || q >= len(out) || moved.Has(q) {
			continue
		}
		out[p], out[q] = out[q], out[p]
		delete(moved, p)
		moved[q] = struct{}{}
	}
	return out, moved
}

// VisiblePositions returns the positions whose raw text contains filter,
// ignoring case. An empty or blank filter selects every position.
func VisiblePositions(entries []string, filter string) []int {
	needle := fold(strings.TrimSpace(filter))
	out := make([]int, 0, len(entries))
	for i, e := range entries {
		if needle == "" || containsFold(e, needle) {
			out = append(out, i)
		}
	}
	return out
}
