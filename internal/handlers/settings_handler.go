package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/luckyorbit/leaderboard-backend/internal/models"
	"github.com/luckyorbit/leaderboard-backend/internal/services"
)

// SettingsHandler handles settings- and prize-table-related HTTP requests
type SettingsHandler struct {
	settingsService services.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var settings models.LeaderboardSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settingsService.UpdateSettings(c.Request.Context(), &settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetPrizes handles GET /prizes
func (h *SettingsHandler) GetPrizes(c *gin.Context) {
	tiers, err := h.settingsService.GetPrizeTiers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get prize tiers: " + err.Error()})
		return
	}
	if tiers == nil {
		tiers = []*models.PrizeTier{}
	}
	c.JSON(http.StatusOK, tiers)
}

// UpdatePrizes handles PUT /prizes
func (h *SettingsHandler) UpdatePrizes(c *gin.Context) {
	var tiers []*models.PrizeTier
	if err := c.ShouldBindJSON(&tiers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, tier := range tiers {
		if tier.Position < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "prize positions must be 1-based"})
			return
		}
	}

	if err := h.settingsService.UpdatePrizeTiers(c.Request.Context(), tiers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prize tiers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, tiers)
}
