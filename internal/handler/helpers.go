package handler

import (
	"errors"
	"io"
	"net/http"

	"coursetree/internal/config"
	"coursetree/internal/domain"
	"coursetree/internal/domain/repositories"
	"coursetree/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrPreconditionFailed):
		httputil.RespondError(w, http.StatusPreconditionFailed, "content was modified since it was read; reload and retry")
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case errors.Is(err, domain.ErrPersistence):
		httputil.RespondError(w, http.StatusInternalServerError, "content could not be saved")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// SaveWarning is the 202 body sent when an edit was applied but not persisted
type SaveWarning struct {
	Warning string      `json:"warning"`
	Saved   bool        `json:"saved"`
	Data    interface{} `json:"data"`
}

// mutationResponder writes the result of a mutating service call
type mutationResponder struct {
	saveFailureMode string
}

// Deleted is the value reported for a delete whose save failed in warn mode
type Deleted struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// respond writes value with the new revision as ETag. In warn mode a failed save still
// reports the attempted value with 202 so the editor does not lose it. A failed load
// never reaches that branch.
func (m mutationResponder) respond(w http.ResponseWriter, status int, value interface{}, rev repositories.Revision, err error) {
	if err != nil {
		if m.saveFailureMode == config.SaveFailureWarn && isSaveFailure(err) {
			httputil.RespondJSON(w, http.StatusAccepted, SaveWarning{
				Warning: "change applied but not saved: " + err.Error(),
				Saved:   false,
				Data:    value,
			})
			return
		}
		handleError(w, err)
		return
	}

	httputil.SetETag(w, rev)
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	httputil.RespondJSON(w, status, value)
}

func isSaveFailure(err error) bool {
	var persistErr *domain.PersistenceError
	return errors.As(err, &persistErr) && persistErr.Op == "save"
}

// respondBadBody reports a request body that could not be decoded. Oversized bodies
// get 413 through handleError.
func respondBadBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		handleError(w, err)
		return
	}
	httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
}

// readBody reads the whole request body within the configured size limit
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)
	return io.ReadAll(r.Body)
}

// nilable keeps a nil pointer from turning into a non-nil interface value
func nilable[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return v
}
