package services

import (
	"context"

	"github.com/luckyorbit/leaderboard-backend/internal/models"
	"github.com/luckyorbit/leaderboard-backend/internal/repositories"
)

// Compile-time check to ensure SettingsServiceImpl implements SettingsService
var _ SettingsService = (*SettingsServiceImpl)(nil)

// SettingsServiceImpl implements SettingsService
type SettingsServiceImpl struct {
	settingsRepo repositories.SettingsRepository
	prizeRepo    repositories.PrizeRepository
}

// NewSettingsService creates a new SettingsServiceImpl
func NewSettingsService(settingsRepo repositories.SettingsRepository, prizeRepo repositories.PrizeRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		settingsRepo: settingsRepo,
		prizeRepo:    prizeRepo,
	}
}

// GetSettings retrieves the current leaderboard settings
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (*models.LeaderboardSettings, error) {
	return s.settingsRepo.GetSettings(ctx)
}

// UpdateSettings updates all leaderboard settings
func (s *SettingsServiceImpl) UpdateSettings(ctx context.Context, settings *models.LeaderboardSettings) error {
	return s.settingsRepo.UpdateSettings(ctx, settings)
}

// GetPrizeTiers retrieves the stored prize table
func (s *SettingsServiceImpl) GetPrizeTiers(ctx context.Context) ([]*models.PrizeTier, error) {
	return s.prizeRepo.FindAll(ctx)
}

// UpdatePrizeTiers replaces the stored prize table
func (s *SettingsServiceImpl) UpdatePrizeTiers(ctx context.Context, tiers []*models.PrizeTier) error {
	return s.prizeRepo.ReplaceAll(ctx, tiers)
}
