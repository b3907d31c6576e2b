package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luckyorbit/leaderboard-backend/internal/config"
	"github.com/luckyorbit/leaderboard-backend/internal/gateway"
	"github.com/luckyorbit/leaderboard-backend/internal/handlers"
	"github.com/luckyorbit/leaderboard-backend/internal/middleware"
)

// HandlerDependencies bundles the handlers the router needs
type HandlerDependencies struct {
	LeaderboardHandler *handlers.LeaderboardHandler
	CountdownHandler   *handlers.CountdownHandler
	SettingsHandler    *handlers.SettingsHandler
	Hub                *gateway.Hub
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"renderers": deps.Hub.ConnectionCount(),
		})
	})

	// Live push for renderers
	router.GET("/ws", func(c *gin.Context) {
		deps.Hub.Serve(c.Writer, c.Request)
	})

	api := router.Group("/api/v1")
	{
		api.GET("/leaderboard", deps.LeaderboardHandler.GetLeaderboard)
		api.GET("/countdown", deps.CountdownHandler.GetCountdown)

		api.GET("/settings", deps.SettingsHandler.GetSettings)
		api.PUT("/settings", deps.SettingsHandler.UpdateSettings)

		api.GET("/prizes", deps.SettingsHandler.GetPrizes)
		api.PUT("/prizes", deps.SettingsHandler.UpdatePrizes)
	}

	return router
}
