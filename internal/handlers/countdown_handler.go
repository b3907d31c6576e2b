package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckyorbit/leaderboard-backend/internal/services"
)

// CountdownHandler handles countdown-related HTTP requests
type CountdownHandler struct {
	countdownService services.CountdownService
}

// NewCountdownHandler creates a new CountdownHandler
func NewCountdownHandler(countdownService services.CountdownService) *CountdownHandler {
	return &CountdownHandler{
		countdownService: countdownService,
	}
}

// GetCountdown handles GET /countdown
func (h *CountdownHandler) GetCountdown(c *gin.Context) {
	c.JSON(http.StatusOK, h.countdownService.View())
}
