package public

import (
	"context"
	"encoding/xml"

	"coursetree/internal/contenttree"
	"coursetree/internal/domain/services"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Sitemap lists the home page, every public course and every listed node with a video
func (s *publicService) Sitemap(ctx context.Context) ([]services.SitemapEntry, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	lastMod := s.now().UTC().Format("2006-01-02")
	entries := []services.SitemapEntry{{
		Loc:        s.baseURL,
		LastMod:    lastMod,
		ChangeFreq: "monthly",
		Priority:   1,
	}}

	for _, c := range doc.Courses {
		if !c.IsPublic {
			continue
		}
		courseURL := s.baseURL + "/cursos/" + c.ID
		entries = append(entries, services.SitemapEntry{
			Loc:        courseURL,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   0.8,
		})

		for _, node := range contenttree.Flatten(c.Content) {
			if !node.Listed() || node.VideoURL == "" {
				continue
			}
			entries = append(entries, services.SitemapEntry{
				Loc:        courseURL + "/" + node.URLParam,
				LastMod:    lastMod,
				ChangeFreq: "weekly",
				Priority:   0.6,
			})
		}
	}

	s.logger.Debug("sitemap built", "urls", len(entries))
	return entries, nil
}

type urlSet struct {
	XMLName xml.Name                `xml:"urlset"`
	Xmlns   string                  `xml:"xmlns,attr"`
	URLs    []services.SitemapEntry `xml:"url"`
}

// RenderSitemap encodes entries as a sitemaps.org urlset document
func RenderSitemap(entries []services.SitemapEntry) ([]byte, error) {
	body, err := xml.MarshalIndent(urlSet{Xmlns: sitemapNamespace, URLs: entries}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
