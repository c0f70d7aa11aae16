package services

import (
	"context"

	"coursetree/internal/domain/models/content"
)

// PublicService builds read-only views for anonymous visitors.
// Only public courses are visible; anything else is reported as not found.
type PublicService interface {
	Catalog(ctx context.Context) ([]CatalogEntry, error)
	CoursePage(ctx context.Context, courseID string) (*CoursePage, error)
	NodePage(ctx context.Context, courseID, param string) (*NodePage, error)
	Children(ctx context.Context, courseID, parentParam string) ([]content.ContentNode, error)
	Sitemap(ctx context.Context) ([]SitemapEntry, error)
}

// CatalogEntry is one public course on the home page
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl,omitempty"`
}

// CoursePage is the landing view of a course
type CoursePage struct {
	Course   content.CourseFields  `json:"course"`
	CoverURL string                `json:"coverUrl,omitempty"`
	Items    []content.ContentNode `json:"items"`
}

// Crumb is one step of a breadcrumb trail
type Crumb struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URLParam string `json:"urlParam"`
}

// NodePage is the view of a single node. A node with children is a phase and
// lists its visible children that have a cover.
type NodePage struct {
	Course     content.CourseFields  `json:"course"`
	Node       content.ContentNode   `json:"node"`
	IsPhase    bool                  `json:"isPhase"`
	Items      []content.ContentNode `json:"items"`
	Breadcrumb []Crumb               `json:"breadcrumb"`
	CoverURL   string                `json:"coverUrl,omitempty"`
}

// SitemapEntry is one URL of the public sitemap
type SitemapEntry struct {
	Loc        string  `json:"loc" xml:"loc"`
	LastMod    string  `json:"lastmod" xml:"lastmod"`
	ChangeFreq string  `json:"changefreq" xml:"changefreq"`
	Priority   float64 `json:"priority" xml:"priority"`
}
