// Package seo derives page metadata (titles, canonical URLs, hreflang
// alternates and OpenGraph properties) for posts, list pages and tag pages.
package seo

import (
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/i18n"
)

// XDefault is the hreflang value pointing at the default locale page.
const XDefault = "x-default"

// Alternate is one hreflang link.
type Alternate struct {
	Lang string `json:"hreflang"`
	Href string `json:"href"`
}

// Property is an OpenGraph meta property. Repeated properties keep order.
type Property struct {
	Property string `json:"property"`
	Content  string `json:"content"`
}

// Meta is everything a page head needs.
type Meta struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Canonical   string      `json:"canonical"`
	Lang        string      `json:"lang"`
	Robots      string      `json:"robots"`
	FeedURL     string      `json:"feed_url"`
	Alternates  []Alternate `json:"alternates,omitempty"`
	OpenGraph   []Property  `json:"open_graph,omitempty"`
}

// Builder produces Meta for one site.
type Builder struct {
	site       generator.SiteMetadata
	languages  *i18n.Set
	translator *i18n.Translator
}

// NewBuilder returns a metadata builder. translator may be nil, in which case
// message keys are used as labels.
func NewBuilder(site generator.SiteMetadata, languages *i18n.Set, translator *i18n.Translator) *Builder {
	return &Builder{site: site, languages: languages, translator: translator}
}

// ForPost describes a single post. variants lists the locales that have their
// own file; a post served through fallback is canonicalised to its source.
func (b *Builder) ForPost(item *content.Item, variants []string) Meta {
	canonicalLang := item.Lang
	if item.Fallback() {
		canonicalLang = item.SourceLang
	}
	canonical := generator.PostURL(b.site, b.languages, canonicalLang, item.Slug)

	meta := Meta{
		Title:       b.title(item.Title),
		Description: item.Spoiler,
		Canonical:   canonical,
		Lang:        item.Lang,
		Robots:      robots(item.Indexed && !item.Draft),
		FeedURL:     generator.FeedURL(b.site, b.languages, item.Lang),
	}

	for _, lang := range variants {
		meta.Alternates = append(meta.Alternates, Alternate{
			Lang: lang,
			Href: generator.PostURL(b.site, b.languages, lang, item.Slug),
		})
	}
	if len(meta.Alternates) > 0 {
		meta.Alternates = append(meta.Alternates, Alternate{
			Lang: XDefault,
			Href: generator.PostURL(b.site, b.languages, b.languages.Default(), item.Slug),
		})
	}

	meta.OpenGraph = b.openGraph("article", meta)
	if item.Date != "" {
		meta.OpenGraph = append(meta.OpenGraph, Property{"article:published_time", item.Date})
	}
	if item.Author != "" {
		meta.OpenGraph = append(meta.OpenGraph, Property{"article:author", item.Author})
	}
	for _, tag := range item.Tags {
		meta.OpenGraph = append(meta.OpenGraph, Property{"article:tag", tag})
	}
	return meta
}

// ForList describes a locale's home listing.
func (b *Builder) ForList(lang string) Meta {
	meta := Meta{
		Title:       b.site.Title,
		Description: b.site.DescriptionFor(lang),
		Canonical:   generator.HomeURL(b.site, b.languages, lang),
		Lang:        lang,
		Robots:      robots(true),
		FeedURL:     generator.FeedURL(b.site, b.languages, lang),
		Alternates:  b.everyLocale(func(code string) string {
			return generator.HomeURL(b.site, b.languages, code)
		}),
	}
	meta.OpenGraph = b.openGraph("website", meta)
	return meta
}

// ForTag describes a tag page.
func (b *Builder) ForTag(tag content.Tag, lang string) Meta {
	tagURL := func(code string) string {
		return b.site.Base() + b.languages.Path(code, "/tags/"+tag.Slug+"/")
	}
	meta := Meta{
		Title:      b.title(b.t(lang, "tags.tag_title", tag.Name)),
		Canonical:  tagURL(lang),
		Lang:       lang,
		Robots:     robots(true),
		FeedURL:    generator.FeedURL(b.site, b.languages, lang),
		Alternates: b.everyLocale(tagURL),
	}
	meta.OpenGraph = b.openGraph("website", meta)
	return meta
}

// ForTagIndex describes the page listing every tag.
func (b *Builder) ForTagIndex(lang string) Meta {
	tagsURL := func(code string) string {
		return b.site.Base() + b.languages.Path(code, "/tags/")
	}
	meta := Meta{
		Title:      b.title(b.t(lang, "tags.title")),
		Canonical:  tagsURL(lang),
		Lang:       lang,
		Robots:     robots(true),
		FeedURL:    generator.FeedURL(b.site, b.languages, lang),
		Alternates: b.everyLocale(tagsURL),
	}
	meta.OpenGraph = b.openGraph("website", meta)
	return meta
}

func (b *Builder) everyLocale(href func(code string) string) []Alternate {
	locales := b.languages.Locales()
	out := make([]Alternate, 0, len(locales)+1)
	for _, code := range locales {
		out = append(out, Alternate{Lang: code, Href: href(code)})
	}
	return append(out, Alternate{Lang: XDefault, Href: href(b.languages.Default())})
}

func (b *Builder) openGraph(kind string, meta Meta) []Property {
	props := []Property{
		{"og:type", kind},
		{"og:title", meta.Title},
		{"og:url", meta.Canonical},
		{"og:locale", meta.Lang},
	}
	if b.site.Title != "" {
		props = append(props, Property{"og:site_name", b.site.Title})
	}
	if meta.Description != "" {
		props = append(props, Property{"og:description", meta.Description})
	}
	return props
}

func (b *Builder) title(page string) string {
	switch {
	case page == "":
		return b.site.Title
	case b.site.Title == "":
		return page
	default:
		return page + " | " + b.site.Title
	}
}

func (b *Builder) t(lang, key string, args ...any) string {
	if b.translator == nil {
		return key
	}
	return b.translator.T(lang, key, args...)
}

func robots(index bool) string {
	if index {
		return "index,follow"
	}
	return "noindex,follow"
}
