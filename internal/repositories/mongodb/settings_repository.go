package mongodb

import (
	"context"
	"time"

	"github.com/luckyorbit/leaderboard-backend/internal/models"
	"github.com/luckyorbit/leaderboard-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SettingsRepository implements repositories.SettingsRepository
type SettingsRepository struct {
	collection *mongo.Collection
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *mongo.Database) repositories.SettingsRepository {
	return &SettingsRepository{
		collection: db.Collection("leaderboard_settings"),
	}
}

// GetSettings retrieves the current leaderboard settings
func (r *SettingsRepository) GetSettings(ctx context.Context) (*models.LeaderboardSettings, error) {
	var settings models.LeaderboardSettings
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		// If no settings exist, create default settings (no end date)
		settings = models.LeaderboardSettings{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		_, err = r.collection.InsertOne(ctx, settings)
		if err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings updates all leaderboard settings
func (r *SettingsRepository) UpdateSettings(ctx context.Context, settings *models.LeaderboardSettings) error {
	settings.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{}, settings)
	return err
}
