// Package auth issues and checks the bearer tokens that protect the plan.
// A plan has a single owner, so a token only has to prove it was signed with
// the configured secret and is within its lifetime.
package auth

import (
	"context"
	"time"
)

// DefaultSubject is the subject claim used when none is given.
const DefaultSubject = "plan-owner"

// Issuer is written to and required in every token.
const Issuer = "planner"

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token for subject.
	GenerateToken(ctx context.Context, subject string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of a token.
type Claims struct {
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
