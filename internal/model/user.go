package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionTTL is how long an issued session token stays valid. There is no
// sliding expiration; a token dies SessionTTL after login regardless of use.
const SessionTTL = 24 * time.Hour

// User represents a document in the users collection.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses. The password
// digest is never echoed.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TokenResponse represents a successful login response.
type TokenResponse struct {
	Token string `json:"token"`
}
