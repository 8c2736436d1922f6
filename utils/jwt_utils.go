package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields the client reads from the API's access token.
type Claims struct {
	UserID int64  `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the token without verifying the signature. The client has
// no signing key; it only needs the expiry to decide whether a stored session is stale.
func ParseClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// TokenExpired reports whether the token's exp claim is at or before now.
// Tokens without exp never expire; undecodable tokens are treated as expired.
func TokenExpired(tokenString string, now time.Time) bool {
	claims, err := ParseClaims(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.After(now)
}
