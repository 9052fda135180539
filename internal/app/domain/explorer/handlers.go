package explorer

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handlers is the HTTP surface over exploration sessions.
type Handlers struct {
	manager *Manager
	logger  *zap.Logger
}

func NewHandlers(manager *Manager, logger *zap.Logger) *Handlers {
	return &Handlers{manager: manager, logger: logger}
}

func (h *Handlers) CreateSession(c *gin.Context) {
	s := h.manager.Create(c.Request.Context())
	c.JSON(http.StatusCreated, s.Snapshot())
}

func (h *Handlers) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) DeleteSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	h.manager.Delete(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}

func (h *Handlers) Search(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	s.Search(c.Request.Context(), req.Query)
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) Jump(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Name string  `json:"name" binding:"required"`
		Lat  float64 `json:"lat"`
		Lng  float64 `json:"lng"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, lat and lng are required"})
		return
	}

	if err := s.JumpTo(c.Request.Context(), req.Name, req.Lat, req.Lng, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates are not usable"})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) ClickMap(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng are required"})
		return
	}

	if err := s.ClickMap(c.Request.Context(), req.Lat, req.Lng); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates are not usable"})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) Back(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Back(c.Request.Context()); err != nil {
		h.logger.Error("Back traversal failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) Forward(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Forward(c.Request.Context()); err != nil {
		h.logger.Error("Forward traversal failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) Random(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.RandomLocation(c.Request.Context()); err != nil {
		h.logger.Error("Random location flow failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) Locate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	// A missing body or ok=false means device geolocation failed; the
	// session falls back to the default location.
	var req struct {
		Lat float64 `json:"latitude"`
		Lng float64 `json:"longitude"`
		OK  bool    `json:"ok"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := s.Locate(c.Request.Context(), req.Lat, req.Lng, req.OK); err != nil {
		h.logger.Error("Locate flow failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) Ask(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	if err := s.Ask(c.Request.Context(), req.Prompt); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "the assistant could not answer right now",
			"state": s.Snapshot(),
		})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) ClickQuestion(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	if err := s.ClickQuestion(c.Request.Context(), req.Question); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "the assistant could not answer right now",
			"state": s.Snapshot(),
		})
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) SetTileStyle(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Style string `json:"style" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "style is required"})
		return
	}

	s.SetTileStyle(req.Style)
	c.JSON(http.StatusOK, s.Snapshot())
}

func (h *Handlers) session(c *gin.Context) (*Session, bool) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}
	s, ok := h.manager.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}
