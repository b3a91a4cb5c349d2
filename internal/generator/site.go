package generator

import (
	"strings"

	"github.com/goliatone/go-folio/internal/i18n"
)

const fallbackBaseURL = "http://localhost"

// SiteMetadata describes the channel level fields shared by feeds, the
// sitemap and robots.txt.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	AuthorEmail string
	// Descriptions overrides Description per locale.
	Descriptions map[string]string
}

// Base returns the site URL without a trailing slash.
func (m SiteMetadata) Base() string {
	base := strings.TrimRight(strings.TrimSpace(m.BaseURL), "/")
	if base == "" {
		return fallbackBaseURL
	}
	return base
}

// DescriptionFor returns the locale description or the site default.
func (m SiteMetadata) DescriptionFor(lang string) string {
	if desc := strings.TrimSpace(m.Descriptions[lang]); desc != "" {
		return desc
	}
	return m.Description
}

// PostURL is the canonical absolute URL of a post. Non default locales are
// prefixed with their code and every post URL ends with a slash.
func PostURL(site SiteMetadata, languages *i18n.Set, lang, slug string) string {
	return site.Base() + languages.Path(lang, "/"+slug+"/")
}

// TagURL is the absolute URL of a tag page in the default locale.
func TagURL(site SiteMetadata, tagSlug string) string {
	return site.Base() + "/tags/" + tagSlug + "/"
}

// HomeURL is the absolute URL of a locale's list page.
func HomeURL(site SiteMetadata, languages *i18n.Set, lang string) string {
	return site.Base() + languages.Path(lang, "/")
}

// FeedURL is the absolute URL of a locale's RSS feed.
func FeedURL(site SiteMetadata, languages *i18n.Set, lang string) string {
	return site.Base() + languages.Path(lang, "/rss.xml")
}
