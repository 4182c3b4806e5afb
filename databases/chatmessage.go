package databases

// go generate: mockery --name ChatMessageDatabase

import (
	"context"

	"github.com/whosonpole/whos-on-pole-api/models"
)

const chatMessageName = "chat_messages"

// ChatMessageDatabase contains the methods to use with the chat message database
type ChatMessageDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.ChatMessage, error)
	InsertOne(ctx context.Context, message models.ChatMessage) (*models.ChatMessage, error)
}

type chatMessageDatabase struct {
	db DatabaseHelper
}

// NewChatMessageDatabase initializes a new instance of chat message database with the provided db connection
func NewChatMessageDatabase(db DatabaseHelper) ChatMessageDatabase {
	return &chatMessageDatabase{
		db: db,
	}
}

func (c *chatMessageDatabase) FindOne(ctx context.Context, filter interface{}) (*models.ChatMessage, error) {
	message := &models.ChatMessage{}
	err := c.db.Collection(chatMessageName).FindOne(ctx, filter).Decode(message)
	if err != nil {
		return nil, err
	}
	return message, nil
}

func (c *chatMessageDatabase) InsertOne(ctx context.Context, message models.ChatMessage) (*models.ChatMessage, error) {
	_, err := c.db.Collection(chatMessageName).InsertOne(ctx, message)
	if err != nil {
		return nil, err
	}
	return &message, nil
}
