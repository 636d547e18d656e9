package user

import "time"

type User struct {
	Username  string    `json:"username" bson:"username"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

// @name CreateUserRequest
type CreateUserRequest struct {
	Username string `json:"username"`
}

// @name CreateUserResponse
type CreateUserResponse struct {
	Message string `json:"message"`
}
