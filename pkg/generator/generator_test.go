package generator_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-folio/pkg/generator"
)

func TestPublicBuilders(t *testing.T) {
	languages, err := generator.NewLanguages("en", "es")
	if err != nil {
		t.Fatalf("NewLanguages: %v", err)
	}
	site := generator.SiteMetadata{Title: "Notes", BaseURL: "https://example.com/"}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []*generator.Item{
		{Slug: "hello", Lang: "en", SourceLang: "en", Title: "Hello", Date: "2024-01-01", Tags: []string{"Go"}},
		{Slug: "later", Lang: "en", SourceLang: "en", Title: "Later", Date: "2030-01-01"},
	}

	if got := generator.PostURL(site, languages, "es", "hello"); got != "https://example.com/es/hello/" {
		t.Fatalf("unexpected post url %q", got)
	}

	sitemap := generator.BuildSitemap(site, items, now)
	if !strings.Contains(sitemap, "<loc>https://example.com/hello/</loc>") {
		t.Fatalf("expected published post in sitemap:\n%s", sitemap)
	}
	if strings.Contains(sitemap, "later") {
		t.Fatalf("expected future post to be skipped:\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "https://example.com/tags/go/") {
		t.Fatalf("expected tag page in sitemap:\n%s", sitemap)
	}

	robots := generator.BuildRobots(site, true)
	if !strings.Contains(robots, "Sitemap: https://example.com/sitemap.xml") {
		t.Fatalf("unexpected robots.txt:\n%s", robots)
	}
}

func TestNewLanguagesRequiresDefault(t *testing.T) {
	if _, err := generator.NewLanguages(""); err == nil {
		t.Fatalf("expected error for empty default locale")
	}
}
