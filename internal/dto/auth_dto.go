package dto

import "github.com/homedash/homedash-backend/internal/models"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string             `json:"access_token"`
	User        models.UserProfile `json:"user"`
}

type SessionResponse struct {
	IsAuthenticated bool                `json:"isAuthenticated"`
	User            *models.UserProfile `json:"user,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Mode      string `json:"mode"`
}
