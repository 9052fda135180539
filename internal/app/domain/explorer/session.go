package explorer

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-worldlens/internal/app/gateway"
	"github.com/FACorreiaa/go-worldlens/internal/app/models"
	"github.com/FACorreiaa/go-worldlens/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-worldlens/internal/pkg/config"
)

// overusedLandmarks is the built-in exclusion set for "random location":
// places the model reaches for far too often when asked for somewhere cool.
var overusedLandmarks = []string{
	"Eiffel Tower",
	"Machu Picchu",
	"Grand Canyon",
	"Taj Mahal",
	"Great Wall of China",
	"Santorini",
	"Petra",
	"Venice",
}

// Session is one exploration session: map view, chat transcript, navigation
// history and the rotating landmark gallery, all coordinated against a
// monotonic session token so that stale asynchronous results never touch the
// currently displayed location.
//
// All state behind mu; AI gateway calls always happen outside the lock, and
// every asynchronous completion re-acquires it and re-checks its captured
// token before writing.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	gw      gateway.Gateway
	logger  *zap.Logger
	metrics *metrics.AppMetrics
	mapCfg  config.MapConfig
	expCfg  config.ExplorerConfig

	mu             sync.Mutex
	view           models.MapView
	focal          *models.Coordinates
	searchText     string
	currentName    string
	transcript     *Transcript
	history        *History
	gallery        []models.VisualLandmark
	galleryEpoch   int
	questions      []string
	alternatives   []string
	seen           []string
	token          uint64
	busy           bool
	galleryLoading bool

	// Completion signals for the most recent asynchronous refresh and
	// replacement-question fetch. Nil until the first one starts.
	refreshDone     chan struct{}
	replacementDone chan struct{}
}

// NewSession creates a session looking at the configured default location at
// the overview zoom. m may be nil (metrics recording is skipped).
func NewSession(gw gateway.Gateway, logger *zap.Logger, cfg *config.Config, m *metrics.AppMetrics) *Session {
	s := &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		gw:        gw,
		logger:    logger,
		metrics:   m,
		mapCfg:    cfg.Map,
		expCfg:    cfg.Explorer,
		view: models.MapView{
			CenterLat: cfg.Map.DefaultLat,
			CenterLng: cfg.Map.DefaultLng,
			Zoom:      cfg.Map.OverviewZoom,
			TileStyle: cfg.Map.TileStyle,
		},
		transcript: NewTranscript(),
		history:    NewHistory(),
	}
	s.transcript.Append(models.RoleAssistant,
		"Welcome! Search for a place, click the map, or let me surprise you.")
	return s
}

// Snapshot is a consistent copy of the session state for API responses.
type Snapshot struct {
	ID             uuid.UUID               `json:"id"`
	View           models.MapView          `json:"view"`
	Focal          *models.Coordinates     `json:"focal,omitempty"`
	SearchText     string                  `json:"search_text"`
	CurrentName    string                  `json:"current_name"`
	Messages       []models.ChatMessage    `json:"messages"`
	Gallery        []models.VisualLandmark `json:"gallery"`
	GalleryEpoch   int                     `json:"gallery_epoch"`
	Questions      []string                `json:"questions"`
	Alternatives   []string                `json:"alternatives,omitempty"`
	History        []models.Location       `json:"history"`
	HistoryCursor  int                     `json:"history_cursor"`
	CanBack        bool                    `json:"can_back"`
	CanForward     bool                    `json:"can_forward"`
	Busy           bool                    `json:"busy"`
	GalleryLoading bool                    `json:"gallery_loading"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var focal *models.Coordinates
	if s.focal != nil {
		f := *s.focal
		focal = &f
	}

	return Snapshot{
		ID:             s.ID,
		View:           s.view,
		Focal:          focal,
		SearchText:     s.searchText,
		CurrentName:    s.currentName,
		Messages:       s.transcript.Messages(),
		Gallery:        append([]models.VisualLandmark(nil), s.gallery...),
		GalleryEpoch:   s.galleryEpoch,
		Questions:      append([]string(nil), s.questions...),
		Alternatives:   append([]string(nil), s.alternatives...),
		History:        s.history.Entries(),
		HistoryCursor:  s.history.Cursor(),
		CanBack:        s.history.CanBack(),
		CanForward:     s.history.CanForward(),
		Busy:           s.busy,
		GalleryLoading: s.galleryLoading,
	}
}

// SetTileStyle switches the map tile style; purely cosmetic state.
func (s *Session) SetTileStyle(style string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.TileStyle = style
}

func (s *Session) setBusy(busy bool) {
	s.mu.Lock()
	s.busy = busy
	s.mu.Unlock()
}

// randomExclusions is the recent-seen list plus the built-in overused set.
func (s *Session) randomExclusions() []string {
	out := make([]string, 0, len(overusedLandmarks)+len(s.seen))
	out = append(out, overusedLandmarks...)
	out = append(out, s.seen...)
	return out
}

// rememberSeen appends a suggested name to the recency list, trimming to the
// configured bound.
func (s *Session) rememberSeen(name string) {
	s.seen = append(s.seen, name)
	if max := s.expCfg.SeenHistoryMax; max > 0 && len(s.seen) > max {
		s.seen = s.seen[len(s.seen)-max:]
	}
}
