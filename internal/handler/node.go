package handler

import (
	"context"
	"log/slog"
	"net/http"

	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"
	"coursetree/internal/domain/services"
	"coursetree/internal/httputil"
)

// NodeHandler handles content node HTTP requests
type NodeHandler struct {
	service services.NodeService
	mutationResponder
	logger *slog.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(service services.NodeService, saveFailureMode string, logger *slog.Logger) *NodeHandler {
	return &NodeHandler{
		service:           service,
		mutationResponder: mutationResponder{saveFailureMode: saveFailureMode},
		logger:            logger,
	}
}

// CreateNode inserts a node under parentId, or at the root when it is omitted
// POST /api/courses/{courseId}/nodes
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req services.CreateNodeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	created, rev, err := h.service.CreateNode(r.Context(), r.PathValue("courseId"), &req, httputil.IfMatch(r))
	h.respond(w, http.StatusCreated, nilable(created), rev, err)
}

// GetNode returns a node and its subtree
// GET /api/courses/{courseId}/nodes/{id}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	node, rev, err := h.service.GetNode(r.Context(), r.PathValue("courseId"), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.SetETag(w, rev)
	httputil.RespondJSON(w, http.StatusOK, node)
}

// PreviewNode returns a node by url param even when the course is not public or the
// node is hidden
// GET /api/courses/{courseId}/preview/{param}
func (h *NodeHandler) PreviewNode(w http.ResponseWriter, r *http.Request) {
	preview, rev, err := h.service.PreviewNode(r.Context(), r.PathValue("courseId"), r.PathValue("param"))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.SetETag(w, rev)
	httputil.RespondJSON(w, http.StatusOK, preview)
}

// UpdateNode replaces the fields of a node, keeping its children
// PUT /api/courses/{courseId}/nodes/{id}
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var req content.NodeFields
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	updated, rev, err := h.service.UpdateNode(r.Context(), r.PathValue("courseId"), r.PathValue("id"), &req, httputil.IfMatch(r))
	h.respond(w, http.StatusOK, nilable(updated), rev, err)
}

// DeleteNode removes a node and its subtree
// DELETE /api/courses/{courseId}/nodes/{id}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	rev, err := h.service.DeleteNode(r.Context(), r.PathValue("courseId"), r.PathValue("id"), httputil.IfMatch(r))
	h.respond(w, http.StatusNoContent, Deleted{Type: "node", ID: r.PathValue("id")}, rev, err)
}

// ToggleActive flips the active flag
// POST /api/courses/{courseId}/nodes/{id}/toggle-active
func (h *NodeHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleActive)
}

// ToggleVisible flips the visible flag
// POST /api/courses/{courseId}/nodes/{id}/toggle-visible
func (h *NodeHandler) ToggleVisible(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleVisible)
}

// MoveUp swaps the node with its previous sibling
// POST /api/courses/{courseId}/nodes/{id}/move-up
func (h *NodeHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.service.MoveUp)
}

// MoveDown swaps the node with its next sibling
// POST /api/courses/{courseId}/nodes/{id}/move-down
func (h *NodeHandler) MoveDown(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.service.MoveDown)
}

type toggleFunc func(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*content.ContentNode, repositories.Revision, error)

type moveFunc func(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*services.MoveResult, repositories.Revision, error)

func (h *NodeHandler) toggle(w http.ResponseWriter, r *http.Request, fn toggleFunc) {
	node, rev, err := fn(r.Context(), r.PathValue("courseId"), r.PathValue("id"), httputil.IfMatch(r))
	h.respond(w, http.StatusOK, nilable(node), rev, err)
}

func (h *NodeHandler) move(w http.ResponseWriter, r *http.Request, fn moveFunc) {
	result, rev, err := fn(r.Context(), r.PathValue("courseId"), r.PathValue("id"), httputil.IfMatch(r))
	h.respond(w, http.StatusOK, nilable(result), rev, err)
}
