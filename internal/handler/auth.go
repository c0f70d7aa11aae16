package handler

import (
	"log/slog"
	"net/http"

	"coursetree/internal/domain/services"
	"coursetree/internal/httputil"
)

// AuthHandler handles admin login
type AuthHandler struct {
	authenticator services.AdminAuthenticator
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authenticator services.AdminAuthenticator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		logger:        logger,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login exchanges the admin password for a bearer token
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	token, err := h.authenticator.Login(r.Context(), req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, token)
}
