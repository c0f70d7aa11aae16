package services

import (
	"context"
	"time"
)

// AdminAuthenticator exchanges the admin password for a bearer token
type AdminAuthenticator interface {
	Login(ctx context.Context, password string) (*AdminToken, error)
}

// AdminToken is a signed admin bearer token
type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
