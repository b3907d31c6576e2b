package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResetTarget is the persisted rolling-window reset instant. Target is kept
// as an RFC 3339 string, the same value handed to browser clients.
type ResetTarget struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Target    string             `bson:"target" json:"target"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Parse returns the target as a time, or an error when the stored string is
// not valid RFC 3339.
func (r *ResetTarget) Parse() (time.Time, error) {
	return time.Parse(time.RFC3339, r.Target)
}
