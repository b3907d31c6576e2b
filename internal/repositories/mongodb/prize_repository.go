package mongodb

import (
	"context"

	"github.com/luckyorbit/leaderboard-backend/internal/models"
	"github.com/luckyorbit/leaderboard-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PrizeRepository implements repositories.PrizeRepository
type PrizeRepository struct {
	collection *mongo.Collection
}

// NewPrizeRepository creates a new PrizeRepository
func NewPrizeRepository(db *mongo.Database) repositories.PrizeRepository {
	return &PrizeRepository{
		collection: db.Collection("prize_tiers"),
	}
}

// FindAll retrieves all prize tiers ordered by position
func (r *PrizeRepository) FindAll(ctx context.Context) ([]*models.PrizeTier, error) {
	opts := options.Find().SetSort(bson.M{"position": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tiers []*models.PrizeTier
	if err := cursor.All(ctx, &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

// ReplaceAll replaces the whole prize table
func (r *PrizeRepository) ReplaceAll(ctx context.Context, tiers []*models.PrizeTier) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(tiers))
	for _, tier := range tiers {
		docs = append(docs, tier)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}
