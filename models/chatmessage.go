package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ChatMessage holds the structure for the chat_messages collection. Every
// message relayed through the paddock chat hub is persisted so that a
// chat_message report has a row to resolve against.
type ChatMessage struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"userId"`
	Username  string             `json:"username" bson:"username"`
	Body      string             `json:"body" bson:"body"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
