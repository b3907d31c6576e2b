package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeaderboardSettings represents system-wide leaderboard settings. EndDate,
// when set, is the authoritative reset instant under the external countdown
// policy; when nil no countdown is shown.
type LeaderboardSettings struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	EndDate   *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy string             `bson:"updatedBy" json:"updatedBy"`
}
