package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/cromos/ballpark/internal/config"
	"github.com/cromos/ballpark/internal/http/middleware"
)

// NewRouter wires the shared middleware chain; limiter may be nil.
func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, limiter *middleware.ClientLimiter, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.CorrelationID(),
		middleware.RequestLogger(log),
		cors.New(corsConfig(cfg.CORS.AllowedOrigins)),
		middleware.RateLimit(limiter),
	)

	handler.Register(router, authMiddleware)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.CorrelationHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.CorrelationHeader},
		AllowCredentials: false,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
