package databases

// go generate: mockery --name ReputationDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whosonpole/whos-on-pole-api/models"
)

const reputationName = "reputations"

// ReputationDatabase contains the methods to use with the reputation database.
// Every mutation is a single FindOneAndUpdate round trip returning the
// refreshed row, and point changes go through $inc so concurrent moderation
// actions against the same user never lose updates.
type ReputationDatabase interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserReputation, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.UserReputation, error)
	FindPaged(ctx context.Context, filter interface{}, limit, page int) ([]models.UserReputation, error)
	IncrementPoints(ctx context.Context, userID string, delta int) (*models.UserReputation, error)
	SetBanExpiry(ctx context.Context, userID string, until time.Time) (*models.UserReputation, error)
	ClearBan(ctx context.Context, userID string) (*models.UserReputation, error)
	ResetStrikes(ctx context.Context, userID string) (*models.UserReputation, error)
	RecordViolation(ctx context.Context, userID string, pointsPenalty int) (*models.UserReputation, error)
}

type reputationDatabase struct {
	db DatabaseHelper
}

// NewReputationDatabase initializes a new instance of reputation database with the provided db connection
func NewReputationDatabase(db DatabaseHelper) ReputationDatabase {
	return &reputationDatabase{
		db: db,
	}
}

func (r *reputationDatabase) FindByUserID(ctx context.Context, userID string) (*models.UserReputation, error) {
	rep := &models.UserReputation{}
	err := r.db.Collection(reputationName).FindOne(ctx, bson.M{"userId": userID}).Decode(rep)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *reputationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.UserReputation, error) {
	cursor, err := r.db.Collection(reputationName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reps []models.UserReputation
	if err := cursor.All(ctx, &reps); err != nil {
		return nil, err
	}
	return reps, nil
}

// FindPaged is the paginated listing behind the admin points overview
func (r *reputationDatabase) FindPaged(ctx context.Context, filter interface{}, limit, page int) ([]models.UserReputation, error) {
	return r.Find(ctx, filter, newMongoPaginate(limit, page).getPaginatedOpts())
}

// apply runs a single upserted FindOneAndUpdate and returns the row as it
// looks after the update. The upsert seeds userId from the filter, so a
// first-touch user gets a zeroed reputation row implicitly.
func (r *reputationDatabase) apply(ctx context.Context, userID string, update bson.M) (*models.UserReputation, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	rep := &models.UserReputation{}
	err := r.db.Collection(reputationName).
		FindOneAndUpdate(ctx, bson.M{"userId": userID}, update, opts).
		Decode(rep)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *reputationDatabase) IncrementPoints(ctx context.Context, userID string, delta int) (*models.UserReputation, error) {
	return r.apply(ctx, userID, bson.M{
		"$inc": bson.M{"points": delta},
		"$set": bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	})
}

func (r *reputationDatabase) SetBanExpiry(ctx context.Context, userID string, until time.Time) (*models.UserReputation, error) {
	return r.apply(ctx, userID, bson.M{
		"$set": bson.M{
			"bannedUntil": until,
			"updatedAt":   primitive.NewDateTimeFromTime(time.Now()),
		},
	})
}

func (r *reputationDatabase) ClearBan(ctx context.Context, userID string) (*models.UserReputation, error) {
	return r.apply(ctx, userID, bson.M{
		"$set": bson.M{
			"bannedUntil": nil,
			"updatedAt":   primitive.NewDateTimeFromTime(time.Now()),
		},
	})
}

func (r *reputationDatabase) ResetStrikes(ctx context.Context, userID string) (*models.UserReputation, error) {
	return r.apply(ctx, userID, bson.M{
		"$set": bson.M{
			"strikes":   0,
			"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
		},
	})
}

func (r *reputationDatabase) RecordViolation(ctx context.Context, userID string, pointsPenalty int) (*models.UserReputation, error) {
	return r.apply(ctx, userID, bson.M{
		"$inc": bson.M{"strikes": 1, "points": -pointsPenalty},
		"$set": bson.M{"updatedAt": primitive.NewDateTimeFromTime(time.Now())},
	})
}
