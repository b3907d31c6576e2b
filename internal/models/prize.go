package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeTier maps a leaderboard position to its prize label
type PrizeTier struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Position int                `bson:"position" json:"position"`
	Prize    string             `bson:"prize" json:"prize"`
}
