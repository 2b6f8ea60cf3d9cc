package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pharmaseek/pharmaseek-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID     uuid.UUID
	Email      string
	Role       enums.UserRole
	PharmacyID *uuid.UUID
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to clients. The jti
// doubles as the Redis key of the server-side session record.
type AccessTokenClaims struct {
	UserID     uuid.UUID      `json:"user_id"`
	Email      string         `json:"email"`
	Role       enums.UserRole `json:"role"`
	PharmacyID *uuid.UUID     `json:"pharmacy_id,omitempty"`
	jwt.RegisteredClaims
}
