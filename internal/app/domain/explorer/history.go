package explorer

import "github.com/FACorreiaa/go-worldlens/internal/app/models"

// History is a linear navigation history with browser semantics: visiting a
// new place while the cursor is not at the end discards everything after the
// cursor. Back and Forward only move the cursor.
// Invariant: 0 <= cursor < len(entries) whenever entries is non-empty.
type History struct {
	entries []models.Location
	cursor  int
}

func NewHistory() *History {
	return &History{cursor: -1}
}

// Visit records a fresh (non-traversal) navigation.
func (h *History) Visit(loc models.Location) {
	h.entries = append(h.entries[:h.cursor+1], loc)
	h.cursor = len(h.entries) - 1
}

func (h *History) CanBack() bool {
	return h.cursor > 0
}

func (h *History) CanForward() bool {
	return h.cursor < len(h.entries)-1
}

// Back moves the cursor one entry back and returns the entry now at the
// cursor. Returns false at the boundary without moving.
func (h *History) Back() (models.Location, bool) {
	if !h.CanBack() {
		return models.Location{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor one entry forward and returns the entry now at
// the cursor. Returns false at the boundary without moving.
func (h *History) Forward() (models.Location, bool) {
	if !h.CanForward() {
		return models.Location{}, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Entries returns a copy of the history sequence.
func (h *History) Entries() []models.Location {
	out := make([]models.Location, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Cursor() int {
	return h.cursor
}

func (h *History) Len() int {
	return len(h.entries)
}
