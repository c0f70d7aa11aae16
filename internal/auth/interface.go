package auth

import "coursetree/internal/domain/models"

// TokenVerifier defines the interface for admin bearer token verification.
// The middleware stays agnostic to how a token is checked.
type TokenVerifier interface {
	// VerifyToken validates a bearer token and returns the admin claims.
	// Returns domain.ErrUnauthorized if the token is not accepted.
	VerifyToken(tokenString string) (*models.AdminClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	Close() error
}
