package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-worldlens/internal/app/models"
)

func loc(name string) models.Location {
	return models.Location{Name: name, Lat: 1, Lng: 2}
}

func TestHistoryVisitAdvancesCursor(t *testing.T) {
	h := NewHistory()
	h.Visit(loc("A"))
	h.Visit(loc("B"))

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
	assert.True(t, h.CanBack())
	assert.False(t, h.CanForward())
}

func TestHistoryBackForwardMoveOnlyCursor(t *testing.T) {
	h := NewHistory()
	h.Visit(loc("A"))
	h.Visit(loc("B"))
	h.Visit(loc("C"))

	entry, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "B", entry.Name)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 1, h.Cursor())

	entry, ok = h.Forward()
	require.True(t, ok)
	assert.Equal(t, "C", entry.Name)
	assert.Equal(t, 2, h.Cursor())
}

func TestHistoryBoundariesAreNoOps(t *testing.T) {
	h := NewHistory()

	_, ok := h.Back()
	assert.False(t, ok)
	_, ok = h.Forward()
	assert.False(t, ok)

	h.Visit(loc("A"))
	_, ok = h.Back()
	assert.False(t, ok, "back at cursor 0 must not move")
	_, ok = h.Forward()
	assert.False(t, ok, "forward at the end must not move")
	assert.Equal(t, 0, h.Cursor())
}

func TestHistoryFreshVisitTruncatesForwardEntries(t *testing.T) {
	h := NewHistory()
	h.Visit(loc("A"))
	h.Visit(loc("B"))
	h.Visit(loc("C"))

	_, ok := h.Back()
	require.True(t, ok)

	h.Visit(loc("D"))

	entries := h.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "A", entries[0].Name)
	assert.Equal(t, "B", entries[1].Name)
	assert.Equal(t, "D", entries[2].Name)
	assert.Equal(t, 2, h.Cursor())
}

func TestHistoryCursorAlwaysInRange(t *testing.T) {
	h := NewHistory()
	ops := []func(){
		func() { h.Visit(loc("A")) },
		func() { h.Back() },
		func() { h.Forward() },
		func() { h.Visit(loc("B")) },
		func() { h.Back() },
		func() { h.Visit(loc("C")) },
		func() { h.Forward() },
		func() { h.Back() },
		func() { h.Back() },
	}
	for _, op := range ops {
		op()
		if h.Len() > 0 {
			require.GreaterOrEqual(t, h.Cursor(), 0)
			require.Less(t, h.Cursor(), h.Len())
		}
	}
}
