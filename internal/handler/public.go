package handler

import (
	"log/slog"
	"net/http"

	"coursetree/internal/domain/services"
	"coursetree/internal/httputil"
	"coursetree/internal/service/public"
)

// PublicHandler serves the anonymous read-only views
type PublicHandler struct {
	service services.PublicService
	logger  *slog.Logger
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(service services.PublicService, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{
		service: service,
		logger:  logger,
	}
}

// ListCourses returns the public course catalog
// GET /api/public/courses
func (h *PublicHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Catalog(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, entries)
}

// GetCourse returns the landing page of a public course
// GET /api/public/courses/{courseId}
func (h *PublicHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.CoursePage(r.Context(), r.PathValue("courseId"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// GetNode returns the page of a node addressed by url param
// GET /api/public/courses/{courseId}/nodes/{param}
func (h *PublicHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.NodePage(r.Context(), r.PathValue("courseId"), r.PathValue("param"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, page)
}

// GetChildren returns the listed children of a phase
// GET /api/public/courses/{courseId}/nodes/{param}/children
func (h *PublicHandler) GetChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.service.Children(r.Context(), r.PathValue("courseId"), r.PathValue("param"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, children)
}

// Sitemap renders the sitemaps.org XML document
// GET /sitemap.xml
func (h *PublicHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Sitemap(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	body, err := public.RenderSitemap(entries)
	if err != nil {
		h.logger.Error("sitemap encoding failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "failed to encode sitemap")
		return
	}
	httputil.RespondBytes(w, http.StatusOK, "application/xml; charset=utf-8", body)
}
