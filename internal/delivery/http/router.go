package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gdugdh24/purposematch/internal/delivery/http/handler"
	"github.com/gdugdh24/purposematch/internal/delivery/http/middleware"
)

type Router struct {
	matchHandler   *handler.MatchHandler
	authMiddleware *middleware.AuthMiddleware
	logger         *zap.Logger
}

func NewRouter(
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *zap.Logger,
) *Router {
	return &Router{
		matchHandler:   matchHandler,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(r.logger), gin.Recovery())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			matches := protected.Group("/matches")
			{
				matches.POST("/generate", r.matchHandler.GenerateMatches)
				matches.GET("", r.matchHandler.GetMatches)
				matches.POST("/:id/respond", r.matchHandler.RespondToMatch)
				matches.POST("/:id/icebreakers", r.matchHandler.GenerateIcebreakers)
			}
		}
	}

	return router
}
