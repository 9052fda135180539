package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-worldlens/internal/app/domain/explorer"
)

// Setup wires all API routes onto the router.
func Setup(r *gin.Engine, manager *explorer.Manager, logger *zap.Logger) {
	explorerHandlers := explorer.NewHandlers(manager, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": manager.Count()})
	})

	api := r.Group("/api/v1")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", explorerHandlers.CreateSession)
			sessions.GET("/:sessionId", explorerHandlers.GetSession)
			sessions.DELETE("/:sessionId", explorerHandlers.DeleteSession)

			sessions.POST("/:sessionId/search", explorerHandlers.Search)
			sessions.POST("/:sessionId/jump", explorerHandlers.Jump)
			sessions.POST("/:sessionId/click", explorerHandlers.ClickMap)
			sessions.POST("/:sessionId/back", explorerHandlers.Back)
			sessions.POST("/:sessionId/forward", explorerHandlers.Forward)
			sessions.POST("/:sessionId/random", explorerHandlers.Random)
			sessions.POST("/:sessionId/locate", explorerHandlers.Locate)
			sessions.POST("/:sessionId/ask", explorerHandlers.Ask)
			sessions.POST("/:sessionId/question", explorerHandlers.ClickQuestion)
			sessions.PUT("/:sessionId/tile-style", explorerHandlers.SetTileStyle)
		}
	}
}
