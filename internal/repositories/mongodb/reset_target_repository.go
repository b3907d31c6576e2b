package mongodb

import (
	"context"
	"time"

	"github.com/luckyorbit/leaderboard-backend/internal/models"
	"github.com/luckyorbit/leaderboard-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResetTargetRepository implements repositories.ResetTargetRepository
type ResetTargetRepository struct {
	collection *mongo.Collection
}

// NewResetTargetRepository creates a new ResetTargetRepository
func NewResetTargetRepository(db *mongo.Database) repositories.ResetTargetRepository {
	return &ResetTargetRepository{
		collection: db.Collection("reset_target"),
	}
}

// Get retrieves the stored reset target, or (nil, nil) when none exists
func (r *ResetTargetRepository) Get(ctx context.Context) (*models.ResetTarget, error) {
	var target models.ResetTarget
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&target)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

// Save stores the reset target, overwriting any previous one
func (r *ResetTargetRepository) Save(ctx context.Context, target time.Time) error {
	doc := models.ResetTarget{
		Target:    target.UTC().Format(time.RFC3339),
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{}, doc, opts)
	return err
}
