package explorer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-worldlens/internal/app/gateway"
	"github.com/FACorreiaa/go-worldlens/internal/app/models"
	"github.com/FACorreiaa/go-worldlens/internal/pkg/config"
)

// MockGateway is a testify mock of the AI gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Geocode(ctx context.Context, query string) (*models.GeocodeResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GeocodeResult), args.Error(1)
}

func (m *MockGateway) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Location, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockGateway) LocationSummary(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) VisualKeywords(ctx context.Context, name string, exclude []string) ([]models.VisualLandmark, error) {
	args := m.Called(ctx, name, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VisualLandmark), args.Error(1)
}

func (m *MockGateway) PertinentQuestions(ctx context.Context, name string, count int) ([]string, error) {
	args := m.Called(ctx, name, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockGateway) SinglePertinentQuestion(ctx context.Context, name string, exclude []string) (string, error) {
	args := m.Called(ctx, name, exclude)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) DynamicCoolLocation(ctx context.Context, exclude []string) (*models.Location, error) {
	args := m.Called(ctx, exclude)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Location), args.Error(1)
}

func (m *MockGateway) QueryLocation(ctx context.Context, prompt string, focal *models.Coordinates) (*models.QueryResponse, error) {
	args := m.Called(ctx, prompt, focal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QueryResponse), args.Error(1)
}

// stubGateway is a lightweight scripted double for flows where per-call
// behavior matters more than call assertions. Unset fields degrade to the
// gateway's documented failure values.
type stubGateway struct {
	geocode        func(query string) (*models.GeocodeResult, error)
	summary        func(name string) (string, error)
	visuals        func(name string, exclude []string) ([]models.VisualLandmark, error)
	questions      func(name string, count int) ([]string, error)
	singleQuestion func(name string, exclude []string) (string, error)
	coolLocation   func(exclude []string) (*models.Location, error)
	query          func(prompt string, focal *models.Coordinates) (*models.QueryResponse, error)
}

func (s *stubGateway) Geocode(_ context.Context, query string) (*models.GeocodeResult, error) {
	if s.geocode == nil {
		return nil, nil
	}
	return s.geocode(query)
}

func (s *stubGateway) ReverseGeocode(_ context.Context, lat, lng float64) (*models.Location, error) {
	return nil, nil
}

func (s *stubGateway) LocationSummary(_ context.Context, name string) (string, error) {
	if s.summary == nil {
		return "A fine place.", nil
	}
	return s.summary(name)
}

func (s *stubGateway) VisualKeywords(_ context.Context, name string, exclude []string) ([]models.VisualLandmark, error) {
	if s.visuals == nil {
		return nil, nil
	}
	return s.visuals(name, exclude)
}

func (s *stubGateway) PertinentQuestions(_ context.Context, name string, count int) ([]string, error) {
	if s.questions == nil {
		return nil, nil
	}
	return s.questions(name, count)
}

func (s *stubGateway) SinglePertinentQuestion(_ context.Context, name string, exclude []string) (string, error) {
	if s.singleQuestion == nil {
		return "", nil
	}
	return s.singleQuestion(name, exclude)
}

func (s *stubGateway) DynamicCoolLocation(_ context.Context, exclude []string) (*models.Location, error) {
	if s.coolLocation == nil {
		return nil, nil
	}
	return s.coolLocation(exclude)
}

func (s *stubGateway) QueryLocation(_ context.Context, prompt string, focal *models.Coordinates) (*models.QueryResponse, error) {
	if s.query == nil {
		return &models.QueryResponse{Text: "Answer."}, nil
	}
	return s.query(prompt, focal)
}

var _ gateway.Gateway = (*MockGateway)(nil)
var _ gateway.Gateway = (*stubGateway)(nil)

func testConfig() *config.Config {
	return &config.Config{
		Map: config.MapConfig{
			DefaultName:  "Lisbon",
			DefaultLat:   38.7223,
			DefaultLng:   -9.1393,
			OverviewZoom: 2.5,
			FocusZoom:    11,
			TileStyle:    "satellite",
		},
		Explorer: config.ExplorerConfig{
			QuestionCount:  4,
			GalleryLimit:   4,
			SeenHistoryMax: 20,
		},
	}
}

func newTestSession(gw gateway.Gateway) *Session {
	return NewSession(gw, zap.NewNop(), testConfig(), nil)
}

// waitRefresh blocks until the most recently started gallery refresh
// finishes (applied or discarded).
func waitRefresh(t *testing.T, s *Session) {
	t.Helper()
	s.mu.Lock()
	done := s.refreshDone
	s.mu.Unlock()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("gallery refresh did not complete in time")
	}
}

// waitReplacement blocks until the most recent replacement-question fetch
// finishes.
func waitReplacement(t *testing.T, s *Session) {
	t.Helper()
	s.mu.Lock()
	done := s.replacementDone
	s.mu.Unlock()
	if done == nil {
		return
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("replacement question fetch did not complete in time")
	}
}
