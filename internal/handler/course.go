package handler

import (
	"log/slog"
	"net/http"

	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/services"
	"coursetree/internal/httputil"
)

// CourseHandler handles course HTTP requests
type CourseHandler struct {
	courses services.CourseService
	nodes   services.NodeService
	mutationResponder
	logger *slog.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courses services.CourseService, nodes services.NodeService, saveFailureMode string, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		courses:           courses,
		nodes:             nodes,
		mutationResponder: mutationResponder{saveFailureMode: saveFailureMode},
		logger:            logger,
	}
}

// ListCourses returns every course header
// GET /api/courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, rev, err := h.courses.ListCourses(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.SetETag(w, rev)
	httputil.RespondJSON(w, http.StatusOK, courses)
}

// CreateCourse adds a course with no content
// POST /api/courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req content.CourseFields
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	created, rev, err := h.courses.CreateCourse(r.Context(), &req, httputil.IfMatch(r))
	h.respond(w, http.StatusCreated, nilable(created), rev, err)
}

// GetCourse returns one course with its content
// GET /api/courses/{courseId}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, rev, err := h.courses.GetCourse(r.Context(), r.PathValue("courseId"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.SetETag(w, rev)
	httputil.RespondJSON(w, http.StatusOK, course)
}

// UpdateCourse replaces a course header
// PATCH /api/courses/{courseId}
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req content.CourseFields
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	updated, rev, err := h.courses.UpdateCourse(r.Context(), r.PathValue("courseId"), &req, httputil.IfMatch(r))
	h.respond(w, http.StatusOK, nilable(updated), rev, err)
}

// DeleteCourse removes a course and its content
// DELETE /api/courses/{courseId}
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	rev, err := h.courses.DeleteCourse(r.Context(), r.PathValue("courseId"), httputil.IfMatch(r))
	h.respond(w, http.StatusNoContent, Deleted{Type: "course", ID: r.PathValue("courseId")}, rev, err)
}

// GetTree returns the course forest sorted by order
// GET /api/courses/{courseId}/tree
func (h *CourseHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, rev, err := h.nodes.GetTree(r.Context(), r.PathValue("courseId"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.SetETag(w, rev)
	httputil.RespondJSON(w, http.StatusOK, tree)
}
