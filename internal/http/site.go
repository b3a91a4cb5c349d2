package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/i18n"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/seo"
	"github.com/goliatone/go-folio/internal/themes"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

var (
	// ErrContentServiceRequired is returned when site handlers are built without content.
	ErrContentServiceRequired = errors.New("http: content service is required")
	// ErrGeneratorRequired is returned when site handlers are built without a generator.
	ErrGeneratorRequired = errors.New("http: generator service is required")
)

const (
	contentTypeRSS  = "application/rss+xml; charset=utf-8"
	contentTypeXML  = "application/xml; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"

	headerAcceptLanguage = "Accept-Language"
)

// SiteConfig selects the content type served by the site routes.
type SiteConfig struct {
	ContentType string
}

// SiteDependencies lists the collaborators of the site routes.
type SiteDependencies struct {
	Content    content.Service
	Generator  generator.Service
	Parser     interfaces.MarkdownParser
	SEO        *seo.Builder
	Translator *i18n.Translator
	Switcher   *themes.Switcher
	Themes     *themes.Catalog
	Logger     interfaces.Logger
}

// SiteHandlers serves lists, posts, tags, feeds and preferences.
type SiteHandlers struct {
	contentType string
	content     content.Service
	generator   generator.Service
	parser      interfaces.MarkdownParser
	seo         *seo.Builder
	translator  *i18n.Translator
	languages   *i18n.Set
	switcher    *themes.Switcher
	themes      *themes.Catalog
	logger      interfaces.Logger
}

// NewSiteHandlers validates deps and fills in defaults for the optional ones.
func NewSiteHandlers(cfg SiteConfig, deps SiteDependencies) (*SiteHandlers, error) {
	if deps.Content == nil {
		return nil, ErrContentServiceRequired
	}
	if deps.Generator == nil {
		return nil, ErrGeneratorRequired
	}
	contentType := strings.TrimSpace(cfg.ContentType)
	if contentType == "" {
		contentType = "blog"
	}
	languages := deps.Content.Languages()

	h := &SiteHandlers{
		contentType: contentType,
		content:     deps.Content,
		generator:   deps.Generator,
		parser:      deps.Parser,
		seo:         deps.SEO,
		translator:  deps.Translator,
		languages:   languages,
		switcher:    deps.Switcher,
		themes:      deps.Themes,
		logger:      deps.Logger,
	}
	if h.seo == nil {
		h.seo = seo.NewBuilder(generator.SiteMetadata{}, languages, deps.Translator)
	}
	if h.switcher == nil {
		switcher, err := themes.NewSwitcher(themes.SwitcherConfig{})
		if err != nil {
			return nil, err
		}
		h.switcher = switcher
	}
	if h.logger == nil {
		h.logger = logging.NoOp()
	}
	return h, nil
}

// Register mounts the routes. Static segments win over parameters in the
// echo router, so /tags and /rss.xml never reach the slug handlers.
func (h *SiteHandlers) Register(e *echo.Echo) {
	e.GET("/health", h.health)
	e.GET("/api/locale", h.locale)
	e.GET("/theme/:mode", h.setTheme)
	e.POST("/theme/:mode", h.setTheme)

	e.GET("/rss.xml", h.rss)
	e.GET("/sitemap.xml", h.sitemap)
	e.GET("/robots.txt", h.robots)

	e.GET("/", h.home)
	e.GET("/tags", h.tagIndex)
	e.GET("/tags/:tag", h.tag)
	e.GET("/:slug", h.slugOrLocale)

	e.GET("/:lang/rss.xml", h.localeRSS)
	e.GET("/:lang/tags", h.localeTagIndex)
	e.GET("/:lang/tags/:tag", h.localeTag)
	e.GET("/:lang/:slug", h.localePost)
}

func (h *SiteHandlers) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SiteHandlers) locale(c echo.Context) error {
	code := h.languages.Negotiate(c.Request().Header.Get(headerAcceptLanguage))
	return c.JSON(http.StatusOK, localeResponse{
		Locale:    code,
		Default:   h.languages.Default(),
		Supported: h.languages.Locales(),
		Home:      h.languages.Path(code, "/"),
	})
}

func (h *SiteHandlers) setTheme(c echo.Context) error {
	mode, err := themes.ParseMode(c.Param("mode"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	c.SetCookie(h.switcher.Cookie(mode))
	return c.Redirect(http.StatusSeeOther, safeRedirect(c.Request().Referer(), c.Request().Host))
}

func (h *SiteHandlers) home(c echo.Context) error {
	return h.list(c, h.languages.Default())
}

// slugOrLocale serves /{slug}. A non default locale code in that position is
// the locale's list page.
func (h *SiteHandlers) slugOrLocale(c echo.Context) error {
	value := c.Param("slug")
	if code := strings.ToLower(value); h.languages.Supported(code) && !h.languages.IsDefault(code) {
		return h.list(c, code)
	}
	return h.post(c, h.languages.Default(), value)
}

func (h *SiteHandlers) localePost(c echo.Context) error {
	lang, err := h.prefixedLocale(c)
	if err != nil {
		return err
	}
	return h.post(c, lang, c.Param("slug"))
}

func (h *SiteHandlers) tagIndex(c echo.Context) error {
	return h.renderTagIndex(c, h.languages.Default())
}

func (h *SiteHandlers) localeTagIndex(c echo.Context) error {
	lang, err := h.prefixedLocale(c)
	if err != nil {
		return err
	}
	return h.renderTagIndex(c, lang)
}

func (h *SiteHandlers) tag(c echo.Context) error {
	return h.renderTag(c, h.languages.Default(), c.Param("tag"))
}

func (h *SiteHandlers) localeTag(c echo.Context) error {
	lang, err := h.prefixedLocale(c)
	if err != nil {
		return err
	}
	return h.renderTag(c, lang, c.Param("tag"))
}

func (h *SiteHandlers) rss(c echo.Context) error {
	return h.renderRSS(c, h.languages.Default())
}

func (h *SiteHandlers) localeRSS(c echo.Context) error {
	lang, err := h.prefixedLocale(c)
	if err != nil {
		return err
	}
	return h.renderRSS(c, lang)
}

func (h *SiteHandlers) sitemap(c echo.Context) error {
	body, err := h.generator.Sitemap(c.Request().Context())
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentTypeXML, []byte(body))
}

func (h *SiteHandlers) robots(c echo.Context) error {
	return c.Blob(http.StatusOK, contentTypeText, []byte(h.generator.Robots()))
}

// prefixedLocale reads :lang. Only non default locales carry a prefix.
func (h *SiteHandlers) prefixedLocale(c echo.Context) (string, error) {
	code := strings.ToLower(c.Param("lang"))
	if !h.languages.Supported(code) || h.languages.IsDefault(code) {
		return "", &content.NotFoundError{Resource: "locale", Key: c.Param("lang")}
	}
	return code, nil
}

func (h *SiteHandlers) list(c echo.Context, lang string) error {
	items, err := h.content.Collection(c.Request().Context(), h.contentType, lang)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listPage{
		Lang:  lang,
		Meta:  h.seo.ForList(lang),
		Theme: h.themeContext(c),
		Posts: h.summaries(filterIndexed(items), lang),
	})
}

func (h *SiteHandlers) post(c echo.Context, lang, slug string) error {
	ctx := c.Request().Context()
	item, err := h.content.Resolve(ctx, h.contentType, slug, lang)
	if err != nil {
		return err
	}
	nav, err := h.content.Navigation(ctx, h.contentType, item.Slug, lang)
	if err != nil {
		return err
	}
	variants, err := h.content.Variants(ctx, h.contentType, item.Slug)
	if err != nil {
		return err
	}
	html, err := h.render(item)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, postPage{
		Post:     h.summary(item, lang),
		HTML:     html,
		Prev:     h.navLink(nav.Prev, lang, "post.prev"),
		Next:     h.navLink(nav.Next, lang, "post.next"),
		Variants: variants,
		Meta:     h.seo.ForPost(item, variants),
		Theme:    h.themeContext(c),
		Custom:   item.Custom,
	})
}

func (h *SiteHandlers) renderTagIndex(c echo.Context, lang string) error {
	tags, err := h.content.TagIndex(c.Request().Context(), h.contentType, lang)
	if err != nil {
		return err
	}
	links := make([]tagLink, 0, len(tags))
	for _, tag := range tags {
		link := h.tagLink(tag.Name, tag.Slug, lang)
		link.Count = tag.Count
		links = append(links, link)
	}
	return c.JSON(http.StatusOK, tagIndexPage{
		Lang:  lang,
		Title: h.t(lang, "tags.title"),
		Meta:  h.seo.ForTagIndex(lang),
		Theme: h.themeContext(c),
		Tags:  links,
	})
}

func (h *SiteHandlers) renderTag(c echo.Context, lang, tagSlug string) error {
	ctx := c.Request().Context()
	name, ok, err := h.content.ResolveTagSlug(ctx, h.contentType, tagSlug)
	if err != nil {
		return err
	}
	if !ok {
		return &content.NotFoundError{Resource: "tag", Key: tagSlug}
	}
	items, err := h.content.PostsByTagSlug(ctx, h.contentType, tagSlug, lang)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tagPage{
		Lang:  lang,
		Title: h.t(lang, "tags.tag_title", name),
		Tag:   h.tagLink(name, tagSlug, lang),
		Meta:  h.seo.ForTag(content.Tag{Name: name, Slug: tagSlug, Count: len(items)}, lang),
		Theme: h.themeContext(c),
		Posts: h.summaries(items, lang),
	})
}

func (h *SiteHandlers) renderRSS(c echo.Context, lang string) error {
	body, err := h.generator.RSS(c.Request().Context(), lang)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentTypeRSS, []byte(body))
}

func (h *SiteHandlers) render(item *content.Item) (string, error) {
	if h.parser == nil || item.Body == "" {
		return "", nil
	}
	out, err := h.parser.Parse([]byte(item.Body))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *SiteHandlers) themeContext(c echo.Context) themes.Context {
	mode := h.switcher.FromRequest(c.Request())
	if h.themes == nil {
		return themes.Context{Mode: mode}
	}
	ctx, err := h.themes.Context(mode)
	if err != nil {
		h.logger.WithContext(c.Request().Context()).Warn("http.theme.unavailable", "mode", string(mode), "error", err)
		return themes.Context{Mode: mode}
	}
	return ctx
}

func (h *SiteHandlers) summaries(items []*content.Item, lang string) []postSummary {
	out := make([]postSummary, 0, len(items))
	for _, item := range items {
		out = append(out, h.summary(item, lang))
	}
	return out
}

func (h *SiteHandlers) summary(item *content.Item, lang string) postSummary {
	tags := make([]tagLink, 0, len(item.Tags))
	for _, name := range item.Tags {
		tags = append(tags, h.tagLink(name, content.Slugify(name), lang))
	}
	return postSummary{
		Slug:         item.Slug,
		Lang:         item.Lang,
		SourceLang:   item.SourceLang,
		Title:        item.Title,
		Spoiler:      item.Spoiler,
		Date:         item.Date,
		Author:       item.Author,
		URL:          h.languages.Path(lang, "/"+item.Slug+"/"),
		Tags:         tags,
		WordCount:    item.WordCount,
		ReadingTime:  item.ReadingTimeMinutes,
		ReadingLabel: h.t(lang, "post.reading_time", item.ReadingTimeMinutes),
	}
}

func (h *SiteHandlers) navLink(item *content.Item, lang, labelKey string) *navLink {
	if item == nil {
		return nil
	}
	return &navLink{
		Slug:  item.Slug,
		Title: item.Title,
		URL:   h.languages.Path(lang, "/"+item.Slug+"/"),
		Label: h.t(lang, labelKey),
	}
}

func (h *SiteHandlers) tagLink(name, slug, lang string) tagLink {
	return tagLink{Name: name, Slug: slug, URL: h.languages.Path(lang, "/tags/"+slug+"/")}
}

func (h *SiteHandlers) t(lang, key string, args ...any) string {
	if h.translator == nil {
		return key
	}
	return h.translator.T(lang, key, args...)
}

// safeRedirect keeps theme redirects on the same host.
func safeRedirect(referer, host string) string {
	if referer == "" {
		return "/"
	}
	parsed, err := url.Parse(referer)
	if err != nil {
		return "/"
	}
	if parsed.Host != "" && parsed.Host != host {
		return "/"
	}
	target := parsed.EscapedPath()
	if target == "" {
		target = "/"
	}
	if parsed.RawQuery != "" {
		target += "?" + parsed.RawQuery
	}
	return target
}
