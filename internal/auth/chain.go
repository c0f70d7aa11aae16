package auth

import (
	"context"
	"errors"
	"log/slog"

	"coursetree/internal/config"
	"coursetree/internal/domain"
	"coursetree/internal/domain/models"
)

// Chain accepts a token when any of its verifiers does
type Chain []TokenVerifier

func (c Chain) VerifyToken(tokenString string) (*models.AdminClaims, error) {
	for _, v := range c {
		if claims, err := v.VerifyToken(tokenString); err == nil {
			return claims, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

func (c Chain) Close() error {
	var errs []error
	for _, v := range c {
		errs = append(errs, v.Close())
	}
	return errors.Join(errs...)
}

// NewAdminVerifier builds the verifier chain for the configured admin credentials.
// The issuer is nil when no JWT secret is configured.
func NewAdminVerifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Chain, *TokenIssuer, error) {
	var chain Chain
	var issuer *TokenIssuer

	if cfg.AdminJWTSecret != "" {
		var err error
		issuer, err = NewTokenIssuer(cfg.AdminJWTSecret, cfg.AdminTokenTTL, logger)
		if err != nil {
			return nil, nil, err
		}
		chain = append(chain, issuer)
	}
	if cfg.AuthJWKSURL != "" {
		jwks, err := NewJWKSVerifier(ctx, cfg.AuthJWKSURL, logger)
		if err != nil {
			return nil, nil, err
		}
		chain = append(chain, jwks)
	}
	if cfg.AdminToken != "" {
		chain = append(chain, NewStaticTokenVerifier(cfg.AdminToken))
	}

	if len(chain) == 0 {
		logger.Warn("no admin credentials configured; admin routes will reject every request")
	}
	return chain, issuer, nil
}
