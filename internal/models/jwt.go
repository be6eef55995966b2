package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the JWT claims carried by a portal session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
