package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"coursetree/internal/config"
	"coursetree/internal/domain/repositories"
)

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error messages.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}

// IfMatch returns the revision from the If-Match header, without quotes.
// "*" and an absent header both mean no precondition.
func IfMatch(r *http.Request) repositories.Revision {
	value := strings.TrimSpace(r.Header.Get("If-Match"))
	value = strings.TrimPrefix(value, "W/")
	value = strings.Trim(value, `"`)
	if value == "*" {
		return ""
	}
	return repositories.Revision(value)
}

// SetETag writes rev as a strong ETag. An empty revision writes nothing.
func SetETag(w http.ResponseWriter, rev repositories.Revision) {
	if rev == "" {
		return
	}
	w.Header().Set("ETag", `"`+string(rev)+`"`)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
