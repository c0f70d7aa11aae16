package public

import (
	"context"
	"strings"
	"testing"
)

func TestSitemap(t *testing.T) {
	entries, err := newTestService().Sitemap(context.Background())
	if err != nil {
		t.Fatalf("Sitemap() error = %v", err)
	}

	want := []struct {
		loc      string
		freq     string
		priority float64
	}{
		{"https://example.org", "monthly", 1},
		{"https://example.org/cursos/curso", "weekly", 0.8},
		{"https://example.org/cursos/curso/dia-02", "weekly", 0.6},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries: %+v", len(entries), entries)
	}
	for i, w := range want {
		e := entries[i]
		if e.Loc != w.loc || e.ChangeFreq != w.freq || e.Priority != w.priority {
			t.Errorf("entry %d = %+v, want %+v", i, e, w)
		}
		if e.LastMod != "2024-05-01" {
			t.Errorf("entry %d lastmod = %q", i, e.LastMod)
		}
	}
}

func TestRenderSitemap(t *testing.T) {
	entries, _ := newTestService().Sitemap(context.Background())
	body, err := RenderSitemap(entries)
	if err != nil {
		t.Fatalf("RenderSitemap() error = %v", err)
	}

	xml := string(body)
	for _, fragment := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		`<loc>https://example.org/cursos/curso/dia-02</loc>`,
		`<priority>0.6</priority>`,
		`<changefreq>monthly</changefreq>`,
	} {
		if !strings.Contains(xml, fragment) {
			t.Errorf("sitemap missing %q\n%s", fragment, xml)
		}
	}
}
