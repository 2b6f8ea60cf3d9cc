package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

// RegisterRequest is the body for creating an account upstream. Password
// confirmation is checked by the form rules before this reaches the service.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Role            string `json:"role" validate:"omitempty,oneof=user pharmacist"`
	PharmacyID      string `json:"pharmacyId" validate:"omitempty,uuid4"`
}

// LoginRequest is the body for exchanging credentials upstream.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserProfile is the user object returned to clients.
type UserProfile struct {
	ID         uuid.UUID      `json:"id"`
	Email      string         `json:"email"`
	Role       enums.UserRole `json:"role"`
	PharmacyID *uuid.UUID     `json:"pharmacyId,omitempty"`
}

// AuthResponse carries the locally minted session token and the profile.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      UserProfile `json:"user"`
}
