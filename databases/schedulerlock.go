package databases

// go generate: mockery --name SchedulerLockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whosonpole/whos-on-pole-api/models"
)

const schedulerLockName = "scheduler_locks"

// SchedulerLockDatabase hands out short-lived distributed locks so cron
// jobs run on exactly one instance at a time.
type SchedulerLockDatabase interface {
	TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, owner string) error
}

type schedulerLockDatabase struct {
	db DatabaseHelper
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{
		db: db,
	}
}

// TryAcquireLock claims the named lock when it is free, expired, or already
// held by this owner. The lock names carry a unique index, so a concurrent
// claim by another instance surfaces as a duplicate key error and reads as
// "not acquired" rather than a failure.
func (s *schedulerLockDatabase) TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	now := time.Now()
	filter := bson.M{
		"name": name,
		"$or": []bson.M{
			{"owner": owner},
			{"expiresAt": bson.M{"$lt": now}},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"owner":     owner,
			"expiresAt": now.Add(ttl),
		},
		"$setOnInsert": bson.M{
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	lock := &models.SchedulerLock{}
	err := s.db.Collection(schedulerLockName).FindOneAndUpdate(ctx, filter, update, opts).Decode(lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// lock is held by another live owner
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *schedulerLockDatabase) ReleaseLock(ctx context.Context, name, owner string) error {
	_, err := s.db.Collection(schedulerLockName).DeleteOne(ctx, bson.M{"name": name, "owner": owner})
	return err
}
