package handler

import (
	"fmt"
	"log/slog"
	"mime"
	"net/http"

	"coursetree/internal/domain"
	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/services"
	"coursetree/internal/httputil"
)

// ContentHandler exposes the whole content document to admins
type ContentHandler struct {
	service services.DocumentService
	mutationResponder
	logger *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(service services.DocumentService, saveFailureMode string, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		service:           service,
		mutationResponder: mutationResponder{saveFailureMode: saveFailureMode},
		logger:            logger,
	}
}

// GetContent returns the whole document
// GET /api/content
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	doc, rev, err := h.service.GetDocument(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.SetETag(w, rev)
	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ReplaceContent stores a whole new document. The body is JSON, or YAML when the
// request Content-Type says so.
// PUT /api/content
func (h *ContentHandler) ReplaceContent(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		handleError(w, err)
		return
	}

	decode := content.DecodeJSON
	if isYAML(r.Header.Get("Content-Type")) {
		decode = content.DecodeYAML
	}
	doc, err := decode(body)
	if err != nil {
		handleError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	stored, rev, err := h.service.ReplaceDocument(r.Context(), doc, httputil.IfMatch(r))
	h.respond(w, http.StatusOK, nilable(stored), rev, err)
}

// Export returns the document as a download
// GET /api/content/export?format=json|yaml
func (h *ContentHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	var encode func(*content.Document) ([]byte, error)
	var contentType string
	switch format {
	case "json":
		encode, contentType = content.EncodeJSON, "application/json"
	case "yaml", "yml":
		format, encode, contentType = "yaml", content.EncodeYAML, "application/yaml"
	default:
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q (want json or yaml)", format))
		return
	}

	doc, rev, err := h.service.GetDocument(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	body, err := encode(doc)
	if err != nil {
		h.logger.Error("content export failed", "format", format, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "failed to encode content")
		return
	}

	httputil.SetETag(w, rev)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="content.%s"`, format))
	httputil.RespondBytes(w, http.StatusOK, contentType, body)
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}
