package services

import (
	"context"

	"coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"
)

// Every mutating method loads the document, applies one change to a copy and saves it.
// ifMatch is passed to the store; empty means last writer wins.
//
// When the save fails the method still returns the edited value together with an error
// wrapping domain.ErrPersistence, so callers can report what was attempted. Nothing is
// retried or rolled back.

// CourseService handles course-level business logic
type CourseService interface {
	// ListCourses returns every course header in document order
	ListCourses(ctx context.Context) ([]CourseSummary, repositories.Revision, error)

	// GetCourse returns one course including its content
	GetCourse(ctx context.Context, id string) (*content.Course, repositories.Revision, error)

	// CreateCourse appends a course with empty content; a duplicate id is a conflict
	CreateCourse(ctx context.Context, req *content.CourseFields, ifMatch repositories.Revision) (*content.Course, repositories.Revision, error)

	// UpdateCourse replaces the course header and keeps its content. The id cannot change.
	UpdateCourse(ctx context.Context, id string, req *content.CourseFields, ifMatch repositories.Revision) (*content.Course, repositories.Revision, error)

	// DeleteCourse removes a course and all of its content
	DeleteCourse(ctx context.Context, id string, ifMatch repositories.Revision) (repositories.Revision, error)
}

// NodeService handles content node business logic within one course
type NodeService interface {
	// GetNode returns a node and its subtree
	GetNode(ctx context.Context, courseID, id string) (*content.ContentNode, repositories.Revision, error)

	// PreviewNode finds a node by url param regardless of publication or visibility flags
	PreviewNode(ctx context.Context, courseID, param string) (*NodePreview, repositories.Revision, error)

	// GetTree returns the course forest with every sibling sequence sorted by order
	GetTree(ctx context.Context, courseID string) ([]content.ContentNode, repositories.Revision, error)

	// CreateNode inserts a new childless node under req.ParentID, or at the root when it is empty
	CreateNode(ctx context.Context, courseID string, req *CreateNodeRequest, ifMatch repositories.Revision) (*content.ContentNode, repositories.Revision, error)

	// UpdateNode replaces every field of a node except its id and children
	UpdateNode(ctx context.Context, courseID, id string, req *content.NodeFields, ifMatch repositories.Revision) (*content.ContentNode, repositories.Revision, error)

	// DeleteNode removes a node and its subtree
	DeleteNode(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (repositories.Revision, error)

	// ToggleActive flips the active flag
	ToggleActive(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*content.ContentNode, repositories.Revision, error)

	// ToggleVisible flips the visible flag
	ToggleVisible(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*content.ContentNode, repositories.Revision, error)

	// MoveUp swaps the node with its previous sibling. At the boundary nothing is saved.
	MoveUp(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*MoveResult, repositories.Revision, error)

	// MoveDown swaps the node with its next sibling. At the boundary nothing is saved.
	MoveDown(ctx context.Context, courseID, id string, ifMatch repositories.Revision) (*MoveResult, repositories.Revision, error)
}

// DocumentService exposes the whole document for export and import
type DocumentService interface {
	// GetDocument returns the stored document
	GetDocument(ctx context.Context) (*content.Document, repositories.Revision, error)

	// ReplaceDocument validates and stores a whole new document
	ReplaceDocument(ctx context.Context, doc *content.Document, ifMatch repositories.Revision) (*content.Document, repositories.Revision, error)
}

// CreateNodeRequest is a node plus the id of the node it goes under
type CreateNodeRequest struct {
	content.NodeFields
	ParentID string `json:"parentId,omitempty"`
}

// CourseSummary is a course without its content
type CourseSummary struct {
	content.CourseFields
	NodeCount int `json:"nodeCount"`
}

// MoveResult reports the outcome of a move
type MoveResult struct {
	NodeID   string                `json:"nodeId"`
	Outcome  string                `json:"outcome"` // "moved" or "at_boundary"
	Siblings []content.ContentNode `json:"siblings"`
}

// NodePreview is an editor's view of a node found by url param. Path lists node ids
// from the root down to the node.
type NodePreview struct {
	Course  content.CourseFields `json:"course"`
	Node    content.ContentNode  `json:"node"`
	IsPhase bool                 `json:"isPhase"`
	Path    []string             `json:"path"`
}
