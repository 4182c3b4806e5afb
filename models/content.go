package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ContentItem is the minimal shape the moderation core needs from the
// content collections (posts, comments, grids): the row id, the owning
// user, and for posts the uploaded image asset so removal can clean it up.
// Full content semantics stay with the content subsystem.
type ContentItem struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	UserID        string             `json:"userId" bson:"userId"`
	ImagePublicID string             `json:"imagePublicId,omitempty" bson:"imagePublicId,omitempty"`
}
