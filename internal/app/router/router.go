// Package router assembles the gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chartshandler "trading_journal/internal/feature/charts/transport/handler"
	uploadshandler "trading_journal/internal/feature/uploads/transport/handler"
	"trading_journal/internal/platform/http/handler"
	"trading_journal/internal/platform/http/middleware"
	"trading_journal/internal/platform/logger"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Health  *handler.HealthHandler
	Charts  *chartshandler.ChartHandler
	Uploads *uploadshandler.PresignHandler
}

// NewRouter creates the engine with request id, logging and recovery middleware.
func NewRouter(log *logger.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(log), middleware.Logging(log), gin.Recovery())

	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/gallery")
	})
	r.GET("/gallery", h.Charts.Gallery)

	api := r.Group("/api")
	{
		api.GET("/images", h.Charts.List)
		api.POST("/images/create", h.Charts.Create)
		api.DELETE("/images/delete", h.Charts.Delete)
		api.POST("/uploads/presign", h.Uploads.Presign)
	}

	return r
}
