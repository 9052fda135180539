package explorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-worldlens/internal/app/models"
	"github.com/FACorreiaa/go-worldlens/internal/app/utils"
)

// ErrInvalidCoordinates is returned when a jump target carries a non-finite
// coordinate. No session state changes in that case.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// JumpTo moves the session to a new place. traversal marks a back/forward
// replay, which must not touch the history sequence (the caller already moved
// the cursor). The gallery/question refresh is fired and not awaited; the
// summary fetch is awaited and resolves the placeholder chat message. The
// busy flag is cleared exactly once on every path.
func (s *Session) JumpTo(ctx context.Context, name string, lat, lng float64, traversal bool) error {
	if !utils.FiniteCoordinates(lat, lng) {
		s.logger.Warn("Rejected jump with non-finite coordinates",
			zap.String("name", name),
			zap.Float64("lat", lat),
			zap.Float64("lng", lng))
		return ErrInvalidCoordinates
	}

	start := time.Now()

	s.mu.Lock()
	s.currentName = name
	s.searchText = name
	s.alternatives = nil
	s.view.CenterLat = lat
	s.view.CenterLng = lng
	s.view.Zoom = s.mapCfg.FocusZoom
	s.focal = &models.Coordinates{Lat: lat, Lng: lng}
	exclude := make([]string, 0, len(s.gallery))
	for _, lm := range s.gallery {
		exclude = append(exclude, lm.ShortCaption)
	}
	s.gallery = nil
	placeholder := s.transcript.Append(models.RoleAssistant, fmt.Sprintf("Warping to %s...", name))
	if !traversal {
		s.history.Visit(models.Location{Name: name, Lat: lat, Lng: lng})
	}
	s.busy = true
	s.mu.Unlock()

	defer s.setBusy(false)

	s.startRefresh(ctx, name, exclude)

	summary, err := s.gw.LocationSummary(ctx, name)

	s.mu.Lock()
	if err != nil || strings.TrimSpace(summary) == "" {
		if err != nil {
			s.logger.Warn("Summary fetch failed, using fallback greeting",
				zap.String("name", name), zap.Error(err))
		}
		s.transcript.SetContent(placeholder.ID, fmt.Sprintf("Warped to %s! Ready to explore.", name))
	} else {
		s.transcript.SetContent(placeholder.ID, fmt.Sprintf("Warped to %s!\n\n%s", name, summary))
	}
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.TransitionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("traversal", traversal)))
		s.metrics.TransitionDuration.Record(ctx, time.Since(start).Seconds())
	}
	return nil
}

// startRefresh allocates a fresh session token, clears the gallery and
// question list so stale content never lingers during the fetch, and kicks
// off the asynchronous refresh for the new place. The outgoing gallery's
// captions are passed as exclusions so a revisit gets fresh imagery.
func (s *Session) startRefresh(ctx context.Context, name string, exclude []string) {
	s.mu.Lock()
	s.token++
	token := s.token
	s.gallery = nil
	s.questions = nil
	s.galleryLoading = true
	done := make(chan struct{})
	s.refreshDone = done
	s.mu.Unlock()

	// The refresh outlives the originating request; staleness is handled by
	// the token check, not by cancellation.
	refreshCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		s.runRefresh(refreshCtx, name, token, exclude)
	}()
}

// runRefresh fetches landmarks and discovery questions concurrently and
// applies them only if the captured token is still the live one. A failure in
// one leg never corrupts the other; each degrades to empty on its own.
func (s *Session) runRefresh(ctx context.Context, name string, token uint64, exclude []string) {
	var landmarks []models.VisualLandmark
	var questions []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lms, err := s.gw.VisualKeywords(gctx, name, exclude)
		if err != nil {
			s.logger.Warn("Visual landmark fetch failed", zap.String("name", name), zap.Error(err))
			return nil
		}
		landmarks = lms
		return nil
	})
	g.Go(func() error {
		qs, err := s.gw.PertinentQuestions(gctx, name, s.expCfg.QuestionCount)
		if err != nil {
			s.logger.Warn("Discovery question fetch failed", zap.String("name", name), zap.Error(err))
			return nil
		}
		questions = qs
		return nil
	})
	_ = g.Wait()

	if limit := s.expCfg.GalleryLimit; limit > 0 && len(landmarks) > limit {
		landmarks = landmarks[:limit]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		// A newer transition superseded this fetch. Drop everything; the
		// loading flag now belongs to the newer refresh.
		s.logger.Debug("Discarding stale refresh results",
			zap.String("name", name),
			zap.Uint64("token", token),
			zap.Uint64("live_token", s.token))
		if s.metrics != nil {
			s.metrics.StaleDiscardsTotal.Add(ctx, 1)
		}
		return
	}

	s.gallery = landmarks
	s.questions = questions
	s.galleryEpoch++
	s.galleryLoading = false
}
