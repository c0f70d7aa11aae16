package models

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the only role allowed to edit course content
const RoleAdmin = "admin"

// AdminClaims represents the JWT claims carried by admin bearer tokens.
// Tokens are either issued locally (HS256) or by an external identity
// provider whose JWKS is configured.
type AdminClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Role                 string `json:"role"`
}

// Principal returns the authenticated principal from the subject claim.
func (c *AdminClaims) Principal() string {
	return c.Subject
}
