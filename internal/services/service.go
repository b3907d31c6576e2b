package services

import (
	"context"

	"github.com/luckyorbit/leaderboard-backend/internal/models"
)

// FeedClient is the upstream source of raw leaderboard entries
type FeedClient interface {
	FetchEntries(ctx context.Context) ([]models.Entry, error)
}

// LeaderboardService maintains the ranked leaderboard snapshot
type LeaderboardService interface {
	// Refresh fetches, ranks and applies a new snapshot. Failures degrade
	// to the "unavailable" snapshot state; Refresh never returns an error.
	Refresh(ctx context.Context)

	// Snapshot returns the last applied snapshot
	Snapshot() models.LeaderboardSnapshot
}

// CountdownService maintains the reset-countdown view
type CountdownService interface {
	// Tick recomputes the countdown view. The returned view's Done flag
	// reports whether the countdown has ended permanently.
	Tick(ctx context.Context) models.CountdownView

	// View returns the last computed view
	View() models.CountdownView
}

// SettingsService manages leaderboard settings and the prize table
type SettingsService interface {
	GetSettings(ctx context.Context) (*models.LeaderboardSettings, error)
	UpdateSettings(ctx context.Context, settings *models.LeaderboardSettings) error
	GetPrizeTiers(ctx context.Context) ([]*models.PrizeTier, error)
	UpdatePrizeTiers(ctx context.Context, tiers []*models.PrizeTier) error
}
