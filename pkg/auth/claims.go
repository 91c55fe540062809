package auth

import (
	"github.com/bookeasy/bookeasy-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenPayload captures the data available when minting a session token.
type SessionTokenPayload struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Role   enums.UserRole
	JTI    string
}

// SessionTokenClaims represents the typed token issued to clients after login.
type SessionTokenClaims struct {
	UserID uuid.UUID      `json:"user_id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
