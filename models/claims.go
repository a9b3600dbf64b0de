package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload minted at signup/login and verified by the
// auth middleware on every bearer request.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
}
