// Package public builds the read-only views shown to anonymous visitors.
package public

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"coursetree/internal/contenttree"
	"coursetree/internal/domain"
	models "coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"
	"coursetree/internal/domain/services"
)

type publicService struct {
	store   repositories.DocumentStore
	baseURL string
	now     func() time.Time
	logger  *slog.Logger
}

// NewPublicService creates a new public view service. baseURL prefixes every sitemap location.
func NewPublicService(store repositories.DocumentStore, baseURL string, logger *slog.Logger) services.PublicService {
	return &publicService{
		store:   store,
		baseURL: baseURL,
		now:     time.Now,
		logger:  logger,
	}
}

func (s *publicService) load(ctx context.Context) (*models.Document, error) {
	doc, _, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrPersistence) {
			err = &domain.PersistenceError{Op: "load", Err: err}
		}
		s.logger.Error("content load failed", "error", err)
		return nil, err
	}
	return doc, nil
}

// publicCourse returns the course only when it exists and is public
func publicCourse(doc *models.Document, id string) (*models.Course, error) {
	c, ok := doc.FindCourse(id)
	if !ok || !c.IsPublic {
		return nil, domain.NewNotFound("course", id)
	}
	return c, nil
}

// Catalog lists public courses in document order
func (s *publicService) Catalog(ctx context.Context) ([]services.CatalogEntry, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	entries := []services.CatalogEntry{}
	for _, c := range doc.Courses {
		if !c.IsPublic {
			continue
		}
		cover, _ := contenttree.FirstCover(c.Content)
		entries = append(entries, services.CatalogEntry{
			ID:          c.ID,
			Name:        c.Name,
			Subtitle:    c.Subtitle,
			Description: c.Description,
			CoverURL:    cover,
		})
	}
	return entries, nil
}

// CoursePage lists, for every root node, its visible children with a cover,
// or the root itself when it has no children.
func (s *publicService) CoursePage(ctx context.Context, courseID string) (*services.CoursePage, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	c, err := publicCourse(doc, courseID)
	if err != nil {
		return nil, err
	}

	items := []models.ContentNode{}
	for i := range c.Content {
		root := &c.Content[i]
		if root.HasChildren() {
			items = append(items, coveredVisible(root.Children)...)
			continue
		}
		if root.Visible && root.CoverURL != "" {
			items = append(items, contenttree.CloneNode(*root))
		}
	}
	sortByOrder(items)

	cover, _ := contenttree.FirstCover(c.Content)
	return &services.CoursePage{
		Course:   c.Fields(),
		CoverURL: cover,
		Items:    items,
	}, nil
}

// NodePage resolves a node by url param. Hidden nodes do not exist for visitors.
func (s *publicService) NodePage(ctx context.Context, courseID, param string) (*services.NodePage, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	c, err := publicCourse(doc, courseID)
	if err != nil {
		return nil, err
	}

	found, ok := contenttree.FindByURLParam(c.Content, param)
	if !ok || !found.Visible {
		return nil, domain.NewNotFound("node", param)
	}
	node := contenttree.CloneNode(*found)

	page := &services.NodePage{
		Course:     c.Fields(),
		IsPhase:    node.HasChildren(),
		Items:      []models.ContentNode{},
		Breadcrumb: breadcrumb(c.Content, node.ID),
	}
	if page.IsPhase {
		page.Items = coveredVisible(node.Children)
		sortByOrder(page.Items)
	}

	page.CoverURL = node.CoverURL
	if page.CoverURL == "" {
		if cover, ok := contenttree.FirstCover(node.Children); ok {
			page.CoverURL = cover
		} else {
			page.CoverURL, _ = contenttree.FirstCover(c.Content)
		}
	}

	node.Children = contenttree.SortedByOrder(node.Children)
	page.Node = node
	return page, nil
}

// Children returns the active and visible children of the phase matching parentParam
func (s *publicService) Children(ctx context.Context, courseID, parentParam string) ([]models.ContentNode, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	c, err := publicCourse(doc, courseID)
	if err != nil {
		return nil, err
	}
	children := contenttree.ChildrenByParentParam(c.Content, parentParam)
	sortByOrder(children)
	return children, nil
}

// coveredVisible copies the visible nodes that have a cover. Inactive ones are kept
// so the page can show them as upcoming.
func coveredVisible(nodes []models.ContentNode) []models.ContentNode {
	out := []models.ContentNode{}
	for i := range nodes {
		if nodes[i].Visible && nodes[i].CoverURL != "" {
			out = append(out, contenttree.CloneNode(nodes[i]))
		}
	}
	return out
}

func breadcrumb(forest []models.ContentNode, id string) []services.Crumb {
	path := contenttree.Path(forest, id)
	crumbs := make([]services.Crumb, 0, len(path))
	for _, step := range path {
		n, ok := contenttree.FindByID(forest, step)
		if !ok {
			continue
		}
		crumbs = append(crumbs, services.Crumb{ID: n.ID, Title: n.Title, URLParam: n.URLParam})
	}
	return crumbs
}

func sortByOrder(nodes []models.ContentNode) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Order < nodes[j].Order })
}
