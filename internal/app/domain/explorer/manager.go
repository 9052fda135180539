package explorer

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-worldlens/internal/app/gateway"
	"github.com/FACorreiaa/go-worldlens/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-worldlens/internal/pkg/config"
)

// Manager owns the live exploration sessions. Sessions are anonymous and
// in-memory only; they die with the process.
type Manager struct {
	gw      gateway.Gateway
	logger  *zap.Logger
	cfg     *config.Config
	metrics *metrics.AppMetrics

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewManager(gw gateway.Gateway, logger *zap.Logger, cfg *config.Config, m *metrics.AppMetrics) *Manager {
	return &Manager{
		gw:       gw,
		logger:   logger,
		cfg:      cfg,
		metrics:  m,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create starts a new session at the default overview.
func (m *Manager) Create(ctx context.Context) *Session {
	s := NewSession(m.gw, m.logger, m.cfg, m.metrics)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.ActiveSessionsGauge.Add(ctx, 1)
	}
	m.logger.Info("Session created", zap.String("session_id", s.ID.String()))
	return s
}

func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete drops a session. Idempotent.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) {
	m.mu.Lock()
	_, existed := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if existed && m.metrics != nil {
		m.metrics.ActiveSessionsGauge.Add(ctx, -1)
	}
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
