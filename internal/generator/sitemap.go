package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-folio/internal/content"
)

type sitemapEntry struct {
	Location   string
	LastMod    string
	ChangeFreq string
	Priority   string
}

// BuildSitemap renders a sitemaps.org 0.9 urlset: the home page, every
// published item and one page per distinct tag slug of the published items.
func BuildSitemap(site SiteMetadata, items []*content.Item, now time.Time) string {
	published := FilterPublished(items, now)

	entries := make([]sitemapEntry, 0, len(published)+8)
	entries = append(entries, sitemapEntry{
		Location:   site.Base() + "/",
		ChangeFreq: "daily",
		Priority:   "1.0",
	})

	for _, item := range published {
		entries = append(entries, sitemapEntry{
			Location:   site.Base() + "/" + item.Slug + "/",
			LastMod:    item.Date[:len(isoDateLayout)],
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	for _, slug := range tagSlugs(published) {
		entries = append(entries, sitemapEntry{
			Location:   TagURL(site, slug),
			ChangeFreq: "weekly",
			Priority:   "0.3",
		})
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		b.WriteString("  <url>\n")
		b.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", escapeXML(entry.Location)))
		if entry.LastMod != "" {
			b.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", escapeXML(entry.LastMod)))
		}
		b.WriteString(fmt.Sprintf("    <changefreq>%s</changefreq>\n", entry.ChangeFreq))
		b.WriteString(fmt.Sprintf("    <priority>%s</priority>\n", entry.Priority))
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>\n")
	return b.String()
}

func tagSlugs(items []*content.Item) []string {
	seen := map[string]struct{}{}
	var slugs []string
	for _, item := range items {
		for _, tag := range item.Tags {
			slug := content.Slugify(tag)
			if slug == "" {
				continue
			}
			if _, ok := seen[slug]; ok {
				continue
			}
			seen[slug] = struct{}{}
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs
}
