// Package generator exposes the feed, sitemap and robots.txt builders for hosts
// that assemble their own item collections. Use NewLanguages to describe the
// locale set, then call BuildRSS, BuildSitemap or BuildRobots.
package generator

import (
	"time"

	"github.com/goliatone/go-folio/internal/content"
	internal "github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/i18n"
)

type (
	Service          = internal.Service
	Config           = internal.Config
	BuildOptions     = internal.BuildOptions
	BuildResult      = internal.BuildResult
	Artifact         = internal.Artifact
	Dependencies     = internal.Dependencies
	SiteMetadata     = internal.SiteMetadata
	FeedInput        = internal.FeedInput
	ArtifactWriter   = internal.ArtifactWriter
	WriteFileRequest = internal.WriteFileRequest
	WriteCategory    = internal.WriteCategory
	Item             = content.Item
	Languages        = i18n.Set
)

const (
	CategoryFeed    = internal.CategoryFeed
	CategorySitemap = internal.CategorySitemap
	CategoryRobots  = internal.CategoryRobots
)

// NewLanguages builds a closed locale set. The default locale is served
// without a URL prefix.
func NewLanguages(defaultLocale string, locales ...string) (*Languages, error) {
	return i18n.NewSet(i18n.FromModuleConfig(defaultLocale, locales))
}

// BuildRSS renders an RSS 2.0 document for one locale.
func BuildRSS(in FeedInput) (string, error) {
	return internal.BuildRSS(in)
}

// BuildSitemap renders a sitemap of the published items and their tag pages.
func BuildSitemap(site SiteMetadata, items []*Item, now time.Time) string {
	return internal.BuildSitemap(site, items, now)
}

// BuildRobots renders robots.txt.
func BuildRobots(site SiteMetadata, includeSitemap bool) string {
	return internal.BuildRobots(site, includeSitemap)
}

// PostURL returns the canonical URL of a post.
func PostURL(site SiteMetadata, languages *Languages, lang, slug string) string {
	return internal.PostURL(site, languages, lang, slug)
}
