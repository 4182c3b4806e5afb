package databases

// go generate: mockery --name ContentDatabase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/whosonpole/whos-on-pole-api/models"
)

// ErrUnknownTargetType is returned when a report target type has no backing
// content collection.
var ErrUnknownTargetType = errors.New("unknown target type")

// contentCollections maps a report target type to the collection owning the
// rows. Profiles are intentionally absent: a profile target's owner is the
// target id itself and no collection lookup is needed.
var contentCollections = map[string]string{
	models.TargetTypePost:        "posts",
	models.TargetTypeComment:     "comments",
	models.TargetTypeGrid:        "grids",
	models.TargetTypeChatMessage: "chat_messages",
}

// ContentDatabase resolves report targets to the content rows and owning
// users across the content collections. The moderation core only ever needs
// the minimal {id, userId} shape; full content semantics stay with the
// content subsystem.
type ContentDatabase interface {
	FindOne(ctx context.Context, targetType, targetID string) (*models.ContentItem, error)
	FindOwner(ctx context.Context, targetType, targetID string) (string, error)
	OwnedIDsByUser(ctx context.Context, targetType string, userIDs []string) (map[string][]string, error)
	DeleteOne(ctx context.Context, targetType, targetID string) error
}

type contentDatabase struct {
	db DatabaseHelper
}

// NewContentDatabase initializes a new instance of content database with the provided db connection
func NewContentDatabase(db DatabaseHelper) ContentDatabase {
	return &contentDatabase{
		db: db,
	}
}

func (c *contentDatabase) FindOne(ctx context.Context, targetType, targetID string) (*models.ContentItem, error) {
	collection, ok := contentCollections[targetType]
	if !ok {
		return nil, ErrUnknownTargetType
	}

	oid, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	item := &models.ContentItem{}
	if err := c.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *contentDatabase) FindOwner(ctx context.Context, targetType, targetID string) (string, error) {
	// a profile is owned by the user it belongs to
	if targetType == models.TargetTypeProfile {
		return targetID, nil
	}

	item, err := c.FindOne(ctx, targetType, targetID)
	if err != nil {
		return "", err
	}
	return item.UserID, nil
}

// OwnedIDsByUser resolves every content id of the given type owned by any
// of the given users in a single query, keyed by owner. Callers fan this
// out once per target type instead of once per row.
func (c *contentDatabase) OwnedIDsByUser(ctx context.Context, targetType string, userIDs []string) (map[string][]string, error) {
	collection, ok := contentCollections[targetType]
	if !ok {
		return nil, ErrUnknownTargetType
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1, "userId": 1})
	cursor, err := c.db.Collection(collection).Find(ctx, bson.M{"userId": bson.M{"$in": userIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.ContentItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	owned := make(map[string][]string, len(userIDs))
	for _, item := range items {
		owned[item.UserID] = append(owned[item.UserID], item.ID.Hex())
	}
	return owned, nil
}

func (c *contentDatabase) DeleteOne(ctx context.Context, targetType, targetID string) error {
	collection, ok := contentCollections[targetType]
	if !ok {
		return ErrUnknownTargetType
	}

	oid, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return mongo.ErrNoDocuments
	}

	res, err := c.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
