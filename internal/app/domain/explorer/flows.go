package explorer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-worldlens/internal/app/models"
	"github.com/FACorreiaa/go-worldlens/internal/app/utils"
)

// Search resolves a free-text query and navigates to the result. An
// ambiguous query populates the alternatives list instead of navigating; an
// unresolvable one appends a "not found" message. Transport failures are
// logged and end the flow without navigation.
func (s *Session) Search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	s.searchText = query
	s.busy = true
	s.mu.Unlock()
	defer s.setBusy(false)

	if s.metrics != nil {
		s.metrics.SearchRequestsTotal.Add(ctx, 1)
	}

	result, err := s.gw.Geocode(ctx, query)
	if err != nil {
		s.logger.Error("Geocode failed", zap.String("query", query), zap.Error(err))
		if s.metrics != nil {
			s.metrics.GatewayErrorsTotal.Add(ctx, 1)
		}
		return
	}

	switch {
	case result.Resolved():
		if err := s.JumpTo(ctx, result.Name, result.Lat, result.Lng, false); err != nil {
			s.appendAssistant(fmt.Sprintf("I couldn't pin %q on the map. Try a different spelling.", query))
		}
	case result != nil && len(result.Alternatives) > 0:
		s.mu.Lock()
		s.alternatives = result.Alternatives
		s.transcript.Append(models.RoleAssistant,
			fmt.Sprintf("I found a few places matching %q. Did you mean one of these?", query))
		s.mu.Unlock()
	default:
		s.appendAssistant(fmt.Sprintf("I couldn't find %q on the map. Try a different spelling or a nearby landmark.", query))
	}
}

// ClickMap handles a direct map click: the point is reverse geocoded for a
// display name, then navigated to as a fresh visit. A failed or empty lookup
// still navigates, labeled with the bare coordinates.
func (s *Session) ClickMap(ctx context.Context, lat, lng float64) error {
	if !utils.FiniteCoordinates(lat, lng) {
		return ErrInvalidCoordinates
	}

	s.setBusy(true)
	defer s.setBusy(false)

	name := fmt.Sprintf("%.4f, %.4f", lat, lng)
	loc, err := s.gw.ReverseGeocode(ctx, lat, lng)
	switch {
	case err != nil:
		s.logger.Warn("Reverse geocode failed, labeling with coordinates",
			zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
	case loc != nil && loc.Name != "":
		name = loc.Name
	}

	return s.JumpTo(ctx, name, lat, lng, false)
}

// Ask runs a free-form question through the gateway with the current focal
// coordinates. Gateway failure propagates after logging; the transcript is
// left without an assistant reply for that turn.
func (s *Session) Ask(ctx context.Context, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil
	}

	s.mu.Lock()
	s.transcript.Append(models.RoleUser, prompt)
	var focal *models.Coordinates
	if s.focal != nil {
		f := *s.focal
		focal = &f
	}
	s.busy = true
	s.mu.Unlock()
	defer s.setBusy(false)

	resp, err := s.gw.QueryLocation(ctx, prompt, focal)
	if err != nil {
		s.logger.Error("Free-form query failed", zap.String("prompt", prompt), zap.Error(err))
		if s.metrics != nil {
			s.metrics.GatewayErrorsTotal.Add(ctx, 1)
		}
		return err
	}

	s.mu.Lock()
	s.transcript.AppendMessage(models.ChatMessage{
		Role:      models.RoleAssistant,
		Content:   resp.Text,
		Sources:   resp.Sources,
		Locations: resp.Locations,
	})
	s.mu.Unlock()
	return nil
}

// ClickQuestion dispatches a suggested discovery question: the question is
// removed from the suggestion list immediately, asked as a regular user turn,
// and a single replacement is fetched in the background. A failed replacement
// fetch just leaves the list one item short.
func (s *Session) ClickQuestion(ctx context.Context, question string) error {
	s.mu.Lock()
	kept := s.questions[:0]
	for _, q := range s.questions {
		if q != question {
			kept = append(kept, q)
		}
	}
	s.questions = kept
	remaining := append([]string(nil), kept...)
	name := s.currentName
	token := s.token
	done := make(chan struct{})
	s.replacementDone = done
	s.mu.Unlock()

	replaceCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		s.fetchReplacementQuestion(replaceCtx, name, remaining, token)
	}()

	return s.Ask(ctx, question)
}

func (s *Session) fetchReplacementQuestion(ctx context.Context, name string, shown []string, token uint64) {
	replacement, err := s.gw.SinglePertinentQuestion(ctx, name, shown)
	if err != nil || strings.TrimSpace(replacement) == "" {
		if err != nil {
			s.logger.Warn("Replacement question fetch failed", zap.String("name", name), zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		if s.metrics != nil {
			s.metrics.StaleDiscardsTotal.Add(ctx, 1)
		}
		return
	}
	for _, q := range s.questions {
		if q == replacement {
			return
		}
	}
	s.questions = append(s.questions, replacement)
}

// RandomLocation asks the gateway for somewhere new, excluding recently seen
// names and a built-in set of overused landmarks. The transient "searching"
// message is always removed and the busy flag always cleared, on every path.
func (s *Session) RandomLocation(ctx context.Context) error {
	s.mu.Lock()
	s.token++ // invalidate any in-flight refresh before the state resets
	s.galleryLoading = false // the flag belonged to the refresh just invalidated
	s.gallery = nil
	s.questions = nil
	s.alternatives = nil
	searching := s.transcript.Append(models.RoleAssistant, "Searching for somewhere amazing...")
	exclusions := s.randomExclusions()
	s.busy = true
	s.mu.Unlock()
	defer s.setBusy(false)

	loc, err := s.gw.DynamicCoolLocation(ctx, exclusions)
	if err != nil || loc == nil || !utils.FiniteCoordinates(loc.Lat, loc.Lng) {
		if err != nil {
			s.logger.Error("Random location fetch failed", zap.Error(err))
			if s.metrics != nil {
				s.metrics.GatewayErrorsTotal.Add(ctx, 1)
			}
		}
		s.mu.Lock()
		s.transcript.Remove(searching.ID)
		s.transcript.Append(models.RoleAssistant,
			"I couldn't find a fresh spot right now. Give it another try in a moment!")
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.transcript.Remove(searching.ID)
	s.rememberSeen(loc.Name)
	s.mu.Unlock()

	return s.JumpTo(ctx, loc.Name, loc.Lat, loc.Lng, false)
}

// Back replays the previous history entry. No-op at the boundary; the
// gateway is never called in that case.
func (s *Session) Back(ctx context.Context) error {
	s.mu.Lock()
	loc, ok := s.history.Back()
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.JumpTo(ctx, loc.Name, loc.Lat, loc.Lng, true)
}

// Forward replays the next history entry. No-op at the boundary.
func (s *Session) Forward(ctx context.Context) error {
	s.mu.Lock()
	loc, ok := s.history.Forward()
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.JumpTo(ctx, loc.Name, loc.Lat, loc.Lng, true)
}

// Locate jumps to the device position, or to the configured default location
// when the caller reports that geolocation failed.
func (s *Session) Locate(ctx context.Context, lat, lng float64, ok bool) error {
	if !ok || !utils.FiniteCoordinates(lat, lng) {
		return s.JumpTo(ctx, s.mapCfg.DefaultName, s.mapCfg.DefaultLat, s.mapCfg.DefaultLng, false)
	}
	return s.JumpTo(ctx, "Your Location", lat, lng, false)
}

func (s *Session) appendAssistant(content string) {
	s.mu.Lock()
	s.transcript.Append(models.RoleAssistant, content)
	s.mu.Unlock()
}
