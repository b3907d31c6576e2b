package repositories

import (
	"context"
	"time"

	"github.com/luckyorbit/leaderboard-backend/internal/models"
)

// PrizeRepository defines the interface for prize table operations
type PrizeRepository interface {
	FindAll(ctx context.Context) ([]*models.PrizeTier, error)
	ReplaceAll(ctx context.Context, tiers []*models.PrizeTier) error
}

// SettingsRepository defines the interface for leaderboard settings operations
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*models.LeaderboardSettings, error)
	UpdateSettings(ctx context.Context, settings *models.LeaderboardSettings) error
}

// ResetTargetRepository defines the interface for the persisted rolling reset
// target. Get returns (nil, nil) when no target has been stored yet.
type ResetTargetRepository interface {
	Get(ctx context.Context) (*models.ResetTarget, error)
	Save(ctx context.Context, target time.Time) error
}
