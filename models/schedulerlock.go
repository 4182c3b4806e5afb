package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SchedulerLock is a short-lived distributed lock row so cron jobs run on
// exactly one instance at a time.
type SchedulerLock struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Owner     string             `bson:"owner"`
	ExpiresAt time.Time          `bson:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt"`
}
