package dto

import "github.com/unionbooks/chapter_ledger/internal/core/domain"

// RegisterRequest is the payload for creating a user account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the user representation returned by the API.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// LoginResponse carries the signed bearer token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{UserID: u.UserID, Username: u.Username, Name: u.Name}
}
