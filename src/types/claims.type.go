package types

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	Email    string `json:"email,omitempty"`
	Provider string `json:"provider,omitempty"`
	jwt.RegisteredClaims
}
