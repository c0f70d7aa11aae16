package content

import (
	"context"
	"fmt"
	"log/slog"

	"coursetree/internal/contenttree"
	"coursetree/internal/domain"
	models "coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"
	"coursetree/internal/domain/services"
)

type nodeService struct {
	documentAccess
}

// NewNodeService creates a new node service
func NewNodeService(store repositories.DocumentStore, logger *slog.Logger) services.NodeService {
	return &nodeService{documentAccess{store: store, logger: logger}}
}

// GetNode returns a node and its subtree
func (s *nodeService) GetNode(ctx context.Context, courseID, id string) (*models.ContentNode, repositories.Revision, error) {
	doc, rev, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	c, err := course(doc, courseID)
	if err != nil {
		return nil, "", err
	}
	node, ok := contenttree.FindByID(c.Content, id)
	if !ok {
		return nil, "", domain.NewNotFound("node", id)
	}
	return node, rev, nil
}

// PreviewNode finds a node by url param for an editor. Unlike the public node page it
// ignores whether the course is public and whether the node is active or visible.
func (s *nodeService) PreviewNode(ctx context.Context, courseID, param string) (*services.NodePreview, repositories.Revision, error) {
	doc, rev, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	c, err := course(doc, courseID)
	if err != nil {
		return nil, "", err
	}
	node, ok := contenttree.FindByURLParam(c.Content, param)
	if !ok {
		return nil, "", domain.NewNotFound("node with url param", param)
	}

	preview := &services.NodePreview{
		Course:  c.Fields(),
		Node:    *node,
		IsPhase: len(node.Children) > 0,
		Path:    contenttree.Path(c.Content, node.ID),
	}
	return preview, rev, nil
}

// GetTree returns the course forest sorted by order at every level
func (s *nodeService) GetTree(ctx context.Context, courseID string) ([]models.ContentNode, repositories.Revision, error) {
	doc, rev, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	c, err := course(doc, courseID)
	if err != nil {
		return nil, "", err
	}
	return contenttree.SortedByOrder(c.Content), rev, nil
}

// CreateNode inserts a new node. An unknown parent is reported as not found;
// the node is never placed at the root instead.
func (s *nodeService) CreateNode(ctx context.Context, courseID string, req *services.CreateNodeRequest, ifMatch repositories.Revision) (*models.ContentNode, repositories.Revision, error) {
	if err := validateNodeFields(&req.NodeFields); err != nil {
		return nil, "", validationError(err)
	}

	doc, _, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	c, err := course(doc, courseID)
	if err != nil {
		return nil, "", err
	}

	if req.ParentID != "" {
		if _, ok := contenttree.FindByID(c.Content, req.ParentID); !ok {
			return nil, "", domain.NewNotFound("parent node", req.ParentID)
		}
	}
	if _, exists := contenttree.FindByID(c.Content, req.ID); exists {
		return nil, "", &domain.ConflictError{
			Message:      fmt.Sprintf("node %q already exists in course %q", req.ID, courseID),
			ResourceType: "node",
			ResourceID:   req.ID,
		}
	}
	if err := checkURLParamFree(c, req.URLParam, ""); err != nil {
		return nil, "", err
	}

	node := req.NodeFields.Node()
	if !contenttree.Insert(&c.Content, node, req.ParentID) {
		return nil, "", domain.NewNotFound("parent node", req.ParentID)
	}

	rev, err := s.save(ctx, doc, ifMatch, "create node")
	if err != nil {
		return &node, "", err
	}

	s.logger.Info("node created",
		"course_id", courseID,
		"node_id", node.ID,
		"parent_id", req.ParentID,
	)
	return &node, rev, nil
}

// UpdateNode replaces the fields of a node. Its id and children never change.
func (s *nodeService) UpdateNode(ctx context.Context, courseID, id string, req *models.NodeFields, ifMatch repositories.Revision) (*models.ContentNode, repositories.Revision, error) {
	fields := *req
	if fields.ID == "" {
		fields.ID = id
	}
	if fields.ID != id {
		return nil, "", fmt.Errorf("%w: node id cannot be changed (%q != %q)", domain.ErrValidation, fields.ID, id)
	}
	if err := validateNodeFields(&fields); err != nil {
		return nil, "", validationError(err)
	}

	doc, _, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	c, err := course(doc, courseID)
	if err != nil {
		return nil, "", err
	}
	if _, ok := contenttree.FindByID(c.Content, id); !ok {
		return nil, "", domain.NewNotFound("node", id)
	}
	if err := checkURLParamFree(c, fields.URLParam, id); err != nil {
		return nil, "", err
	}
	contenttree.Update(c.Content, id, fields)
	updated := s.snapshot(c, id)

	rev, err := s.save(ctx, doc, ifMatch, "update node")
	if err != nil {
		return updated, "", err
	}

	s.logger.Info("node updated",
		"course_id", courseID,
		"node_id", id,
	)
	return updated, rev, nil
}

// DeleteNode removes a node and its subtree
func (s *nodeService) DeleteNode(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (repositories.Revision, error) {
	doc, _, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	c, err := course(doc, courseID)
	if err != nil {
		return "", err
	}

	before := contenttree.Count(c.Content)
	if !contenttree.Remove(&c.Content, id) {
		return "", domain.NewNotFound("node", id)
	}

	rev, err := s.save(ctx, doc, ifMatch, "delete node")
	if err != nil {
		return "", err
	}

	s.logger.Info("node deleted",
		"course_id", courseID,
		"node_id", id,
		"nodes_removed", before-contenttree.Count(c.Content),
	)
	return rev, nil
}

// ToggleActive flips the active flag of a node
func (s *nodeService) ToggleActive(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*models.ContentNode, repositories.Revision, error) {
	return s.toggle(ctx, courseID, id, ifMatch, "active", contenttree.ToggleActive)
}

// ToggleVisible flips the visible flag of a node
func (s *nodeService) ToggleVisible(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*models.ContentNode, repositories.Revision, error) {
	return s.toggle(ctx, courseID, id, ifMatch, "visible", contenttree.ToggleVisible)
}

func (s *nodeService) toggle(
	ctx context.Context,
	courseID, id string,
	ifMatch repositories.Revision,
	flag string,
	fn func([]models.ContentNode, string) bool,
) (*models.ContentNode, repositories.Revision, error) {
	doc, _, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	c, err := course(doc, courseID)
	if err != nil {
		return nil, "", err
	}
	if !fn(c.Content, id) {
		return nil, "", domain.NewNotFound("node", id)
	}
	updated := s.snapshot(c, id)

	rev, err := s.save(ctx, doc, ifMatch, "toggle "+flag)
	if err != nil {
		return updated, "", err
	}

	s.logger.Info("node toggled",
		"course_id", courseID,
		"node_id", id,
		"flag", flag,
		"active", updated.Active,
		"visible", updated.Visible,
	)
	return updated, rev, nil
}

// MoveUp swaps the node with its previous sibling
func (s *nodeService) MoveUp(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*services.MoveResult, repositories.Revision, error) {
	return s.move(ctx, courseID, id, ifMatch, "up", contenttree.MoveUp)
}

// MoveDown swaps the node with its next sibling
func (s *nodeService) MoveDown(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*services.MoveResult, repositories.Revision, error) {
	return s.move(ctx, courseID, id, ifMatch, "down", contenttree.MoveDown)
}

// move saves only when something changed. A boundary move succeeds and
// reports the current revision.
func (s *nodeService) move(
	ctx context.Context,
	courseID, id string,
	ifMatch repositories.Revision,
	direction string,
	fn func(*[]models.ContentNode, string) contenttree.MoveResult,
) (*services.MoveResult, repositories.Revision, error) {
	doc, current, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	c, err := course(doc, courseID)
	if err != nil {
		return nil, "", err
	}

	outcome := fn(&c.Content, id)
	if outcome == contenttree.NotFound {
		return nil, "", domain.NewNotFound("node", id)
	}

	siblings, _ := contenttree.Siblings(c.Content, id)
	result := &services.MoveResult{
		NodeID:   id,
		Outcome:  outcome.String(),
		Siblings: siblings,
	}

	if outcome == contenttree.AtBoundary {
		if ifMatch != "" && ifMatch != current {
			return nil, "", domain.ErrPreconditionFailed
		}
		s.logger.Debug("node already at boundary", "course_id", courseID, "node_id", id, "direction", direction)
		return result, current, nil
	}

	rev, err := s.save(ctx, doc, ifMatch, "move "+direction)
	if err != nil {
		return result, "", err
	}

	s.logger.Info("node moved",
		"course_id", courseID,
		"node_id", id,
		"direction", direction,
	)
	return result, rev, nil
}

// snapshot copies the node so the caller never aliases the document being saved
func (s *nodeService) snapshot(c *models.Course, id string) *models.ContentNode {
	node, ok := contenttree.FindByID(c.Content, id)
	if !ok {
		return nil
	}
	copied := contenttree.CloneNode(*node)
	return &copied
}

// checkURLParamFree reports a conflict when another node in the course already uses
// param after normalization. exceptID is the node being updated.
func checkURLParamFree(c *models.Course, param, exceptID string) error {
	existing, ok := contenttree.FindByURLParam(c.Content, param)
	if !ok || existing.ID == exceptID {
		return nil
	}
	return &domain.ConflictError{
		Message:      fmt.Sprintf("url param %q is already used by node %q", contenttree.NormalizeParam(param), existing.ID),
		ResourceType: "node",
		ResourceID:   existing.ID,
	}
}
