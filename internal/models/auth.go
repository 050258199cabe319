package models

import "github.com/golang-jwt/jwt/v5"

// Credentials is the identifier/secret pair persisted for silent re-login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// JWTClaims represents the JWT payload for access tokens. SessionID binds the
// token to the cached credential pair used for silent snapshot rebuilds.
type JWTClaims struct {
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}
