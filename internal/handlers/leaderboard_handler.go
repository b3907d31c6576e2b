package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckyorbit/leaderboard-backend/internal/services"
)

// LeaderboardHandler handles leaderboard-related HTTP requests
type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// GetLeaderboard handles GET /leaderboard. It serves the last applied
// snapshot; the poller keeps it fresh, so no request triggers a fetch.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.leaderboardService.Snapshot())
}
