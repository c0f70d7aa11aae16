package middleware

import (
	"log/slog"
	"net/http"

	"coursetree/internal/auth"
	"coursetree/internal/httputil"
)

// RequireAdmin rejects requests without a bearer token accepted by verifier.
// The admin principal is stored in the request context for handlers and logs.
func RequireAdmin(verifier auth.TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httputil.BearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Warn("admin request rejected",
					"method", r.Method,
					"path", r.URL.Path,
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithPrincipal(r, claims.Principal()))
		})
	}
}
