package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo
type User struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id"`
	Email          string             `json:"email" bson:"email"`
	Username       string             `json:"username" bson:"username"`
	Password       string             `json:"password" bson:"password"`
	FavoriteDriver string             `json:"favoriteDriver" bson:"favoriteDriver"`
	FavoriteTeam   string             `json:"favoriteTeam" bson:"favoriteTeam"`
	CreatedAt      primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt      primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// HealthCheckResponse returns the health check response ugh
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
