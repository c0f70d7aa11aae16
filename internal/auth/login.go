package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"coursetree/internal/domain"
	"coursetree/internal/domain/services"

	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

type passwordAuthenticator struct {
	hash     []byte
	password []byte
	issuer   *TokenIssuer
	logger   *slog.Logger
}

// NewPasswordAuthenticator creates the admin login. A bcrypt hash wins over a plain password;
// with neither configured every login fails.
func NewPasswordAuthenticator(passwordHash, password string, issuer *TokenIssuer, logger *slog.Logger) services.AdminAuthenticator {
	return &passwordAuthenticator{
		hash:     []byte(passwordHash),
		password: []byte(password),
		issuer:   issuer,
		logger:   logger,
	}
}

// Login exchanges the admin password for a signed token
func (a *passwordAuthenticator) Login(ctx context.Context, password string) (*services.AdminToken, error) {
	if a.issuer == nil || !a.matches(password) {
		a.logger.Warn("admin login failed")
		return nil, &domain.UnauthorizedError{Message: "invalid password"}
	}

	token, err := a.issuer.Issue(adminSubject)
	if err != nil {
		return nil, err
	}

	a.logger.Info("admin logged in", "expires_at", token.ExpiresAt)
	return token, nil
}

func (a *passwordAuthenticator) matches(password string) bool {
	if password == "" {
		return false
	}
	if len(a.hash) > 0 {
		err := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
		if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			a.logger.Error("admin password hash is invalid", "error", err)
		}
		return err == nil
	}
	if len(a.password) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), a.password) == 1
}
