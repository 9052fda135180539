package explorer

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-worldlens/internal/app/models"
)

func TestJumpToRejectsNonFiniteCoordinates(t *testing.T) {
	gw := new(MockGateway)
	s := newTestSession(gw)
	before := s.Snapshot()

	for _, pair := range [][2]float64{
		{math.NaN(), 2.35},
		{48.85, math.NaN()},
		{math.Inf(1), 2.35},
		{48.85, math.Inf(-1)},
	} {
		err := s.JumpTo(context.Background(), "Paris", pair[0], pair[1], false)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	}

	after := s.Snapshot()
	assert.Equal(t, before.View, after.View, "map must not move")
	assert.Empty(t, after.History, "no history entry may be appended")
	assert.Len(t, after.Messages, len(before.Messages), "no chat message may be appended")
	gw.AssertNotCalled(t, "LocationSummary", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "VisualKeywords", mock.Anything, mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "PertinentQuestions", mock.Anything, mock.Anything, mock.Anything)
}

func TestJumpToResolvesPlaceholderWithSummary(t *testing.T) {
	gw := new(MockGateway)
	gw.On("LocationSummary", mock.Anything, "Paris").Return("City of light.", nil)
	gw.On("VisualKeywords", mock.Anything, "Paris", mock.Anything).
		Return([]models.VisualLandmark{{ShortCaption: "Louvre", ImageURL: "https://example.com/louvre.jpg"}}, nil)
	gw.On("PertinentQuestions", mock.Anything, "Paris", 4).
		Return([]string{"Why the catacombs?"}, nil)

	s := newTestSession(gw)
	require.NoError(t, s.JumpTo(context.Background(), "Paris", 48.8566, 2.3522, false))
	waitRefresh(t, s)

	snap := s.Snapshot()
	assert.Equal(t, "Paris", snap.CurrentName)
	assert.Equal(t, "Paris", snap.SearchText)
	assert.Equal(t, 48.8566, snap.View.CenterLat)
	assert.Equal(t, 2.3522, snap.View.CenterLng)
	assert.Equal(t, 11.0, snap.View.Zoom, "transition uses the close-up zoom")
	require.NotNil(t, snap.Focal)
	assert.Equal(t, 48.8566, snap.Focal.Lat)
	assert.False(t, snap.Busy)
	assert.False(t, snap.GalleryLoading)

	require.Len(t, snap.History, 1)
	assert.Equal(t, 0, snap.HistoryCursor)

	last := snap.Messages[len(snap.Messages)-1]
	assert.Equal(t, models.RoleAssistant, last.Role)
	assert.Equal(t, "Warped to Paris!\n\nCity of light.", last.Content)

	require.Len(t, snap.Gallery, 1)
	assert.Equal(t, "Louvre", snap.Gallery[0].ShortCaption)
	assert.Equal(t, []string{"Why the catacombs?"}, snap.Questions)
}

func TestJumpToSummaryFailureUsesFallbackAndClearsBusy(t *testing.T) {
	gw := new(MockGateway)
	gw.On("LocationSummary", mock.Anything, "Pluto Springs").Return("", assert.AnError)
	gw.On("VisualKeywords", mock.Anything, "Pluto Springs", mock.Anything).Return(nil, nil)
	gw.On("PertinentQuestions", mock.Anything, "Pluto Springs", 4).Return(nil, nil)

	s := newTestSession(gw)
	require.NoError(t, s.JumpTo(context.Background(), "Pluto Springs", 10, 20, false))
	waitRefresh(t, s)

	snap := s.Snapshot()
	last := snap.Messages[len(snap.Messages)-1]
	assert.Equal(t, "Warped to Pluto Springs! Ready to explore.", last.Content)
	assert.False(t, snap.Busy, "busy flag must be cleared on the failure path too")
}

func TestJumpToClearsSuggestedAlternatives(t *testing.T) {
	gw := new(MockGateway)
	gw.On("LocationSummary", mock.Anything, mock.Anything).Return("ok", nil)
	gw.On("VisualKeywords", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	gw.On("PertinentQuestions", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	s := newTestSession(gw)
	s.mu.Lock()
	s.alternatives = []string{"Paris", "Paris, Texas"}
	s.mu.Unlock()

	require.NoError(t, s.JumpTo(context.Background(), "Paris", 48.8566, 2.3522, false))
	waitRefresh(t, s)

	assert.Empty(t, s.Snapshot().Alternatives)
}

func TestJumpToTraversalLeavesHistoryUntouched(t *testing.T) {
	gw := new(MockGateway)
	gw.On("LocationSummary", mock.Anything, mock.Anything).Return("ok", nil)
	gw.On("VisualKeywords", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	gw.On("PertinentQuestions", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	s := newTestSession(gw)
	require.NoError(t, s.JumpTo(context.Background(), "A", 1, 1, false))
	require.NoError(t, s.JumpTo(context.Background(), "B", 2, 2, false))
	waitRefresh(t, s)

	require.NoError(t, s.JumpTo(context.Background(), "A", 1, 1, true))
	waitRefresh(t, s)

	snap := s.Snapshot()
	require.Len(t, snap.History, 2, "traversal must not append")
	assert.Equal(t, "A", snap.History[0].Name)
	assert.Equal(t, "B", snap.History[1].Name)
}

func TestSessionHistoryTruncationScenario(t *testing.T) {
	gw := new(MockGateway)
	gw.On("LocationSummary", mock.Anything, mock.Anything).Return("ok", nil)
	gw.On("VisualKeywords", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	gw.On("PertinentQuestions", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	s := newTestSession(gw)
	ctx := context.Background()
	require.NoError(t, s.JumpTo(ctx, "A", 1, 1, false))
	require.NoError(t, s.JumpTo(ctx, "B", 2, 2, false))
	require.NoError(t, s.JumpTo(ctx, "C", 3, 3, false))
	require.NoError(t, s.Back(ctx)) // now at B
	require.NoError(t, s.JumpTo(ctx, "D", 4, 4, false))
	waitRefresh(t, s)

	snap := s.Snapshot()
	require.Len(t, snap.History, 3)
	assert.Equal(t, "A", snap.History[0].Name)
	assert.Equal(t, "B", snap.History[1].Name)
	assert.Equal(t, "D", snap.History[2].Name)
	assert.Equal(t, 2, snap.HistoryCursor)
}

func TestRefreshExcludesOutgoingGalleryCaptions(t *testing.T) {
	var seenExclusions [][]string
	gw := &stubGateway{
		visuals: func(name string, exclude []string) ([]models.VisualLandmark, error) {
			seenExclusions = append(seenExclusions, append([]string(nil), exclude...))
			return []models.VisualLandmark{
				{ShortCaption: "Louvre", ImageURL: "https://example.com/l.jpg"},
				{ShortCaption: "Sacre-Coeur", ImageURL: "https://example.com/sc.jpg"},
			}, nil
		},
	}

	s := newTestSession(gw)
	ctx := context.Background()
	require.NoError(t, s.JumpTo(ctx, "Paris", 48.8566, 2.3522, false))
	waitRefresh(t, s)
	require.NoError(t, s.JumpTo(ctx, "Montmartre", 48.886, 2.343, false))
	waitRefresh(t, s)

	require.Len(t, seenExclusions, 2)
	assert.Empty(t, seenExclusions[0], "first fetch has no gallery to exclude")
	assert.Equal(t, []string{"Louvre", "Sacre-Coeur"}, seenExclusions[1],
		"second fetch excludes the outgoing gallery's captions")
}

func TestStaleRefreshResultsAreDiscarded(t *testing.T) {
	release := make(chan struct{})

	gw := new(MockGateway)
	gw.On("LocationSummary", mock.Anything, mock.Anything).Return("ok", nil)

	// The Paris refresh stalls until released, well after Tokyo supersedes it.
	gw.On("VisualKeywords", mock.Anything, "Paris", mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return([]models.VisualLandmark{{ShortCaption: "Louvre", ImageURL: "https://example.com/l.jpg"}}, nil)
	gw.On("PertinentQuestions", mock.Anything, "Paris", 4).
		Return([]string{"paris question?"}, nil)

	gw.On("VisualKeywords", mock.Anything, "Tokyo", mock.Anything).
		Return([]models.VisualLandmark{{ShortCaption: "Shibuya", ImageURL: "https://example.com/s.jpg"}}, nil)
	gw.On("PertinentQuestions", mock.Anything, "Tokyo", 4).
		Return([]string{"tokyo question?"}, nil)

	s := newTestSession(gw)
	ctx := context.Background()

	require.NoError(t, s.JumpTo(ctx, "Paris", 48.8566, 2.3522, false))
	s.mu.Lock()
	parisDone := s.refreshDone
	s.mu.Unlock()

	require.NoError(t, s.JumpTo(ctx, "Tokyo", 35.6762, 139.6503, false))
	waitRefresh(t, s) // Tokyo refresh applied

	close(release)
	<-parisDone // Paris refresh resolves late

	snap := s.Snapshot()
	require.Len(t, snap.Gallery, 1)
	assert.Equal(t, "Shibuya", snap.Gallery[0].ShortCaption, "stale Paris gallery must never apply")
	assert.Equal(t, []string{"tokyo question?"}, snap.Questions)
	assert.False(t, snap.GalleryLoading)
}

func TestRefreshClearsGalleryImmediately(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	gw := new(MockGateway)
	gw.On("LocationSummary", mock.Anything, mock.Anything).Return("ok", nil)
	gw.On("VisualKeywords", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(started); <-release }).
		Return(nil, nil)
	gw.On("PertinentQuestions", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	s := newTestSession(gw)
	s.mu.Lock()
	s.gallery = []models.VisualLandmark{{ShortCaption: "Old", ImageURL: "https://example.com/old.jpg"}}
	s.questions = []string{"old question?"}
	s.mu.Unlock()

	go s.JumpTo(context.Background(), "Osaka", 34.69, 135.5, false)
	<-started

	snap := s.Snapshot()
	assert.Empty(t, snap.Gallery, "stale gallery must not linger during the fetch")
	assert.Empty(t, snap.Questions)
	assert.True(t, snap.GalleryLoading)

	close(release)
	waitRefresh(t, s)
}
