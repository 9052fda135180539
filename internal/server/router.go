package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-worldlens/internal/app/domain/explorer"
	"github.com/FACorreiaa/go-worldlens/internal/app/middleware"
	"github.com/FACorreiaa/go-worldlens/internal/routes"
)

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(manager *explorer.Manager, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.OTELGinMiddleware("worldlens"))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	routes.Setup(r, manager, logger)

	return r
}
