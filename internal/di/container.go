package di

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/goliatone/go-folio/internal/commands"
	sitecmd "github.com/goliatone/go-folio/internal/commands/site"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/generator"
	sitehttp "github.com/goliatone/go-folio/internal/http"
	"github.com/goliatone/go-folio/internal/i18n"
	"github.com/goliatone/go-folio/internal/lint"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/internal/seo"
	"github.com/goliatone/go-folio/internal/themes"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Container wires module dependencies from a runtime config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logOutput      io.Writer
	clock          func() time.Time

	repo       interfaces.ContentRepository
	writer     generator.ArtifactWriter
	themeLoad  themes.ManifestLoader
	languages  *i18n.Set
	translator *i18n.Translator
	parser     interfaces.MarkdownParser

	content   content.Service
	generator generator.Service
	linter    *lint.Linter
	seo       *seo.Builder
	switcher  *themes.Switcher
	catalog   *themes.Catalog
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogOutput redirects console and logrus output.
func WithLogOutput(w io.Writer) Option {
	return func(c *Container) {
		c.logOutput = w
	}
}

// WithRepository replaces the directory repository rooted at Config.Content.Dir.
func WithRepository(repo interfaces.ContentRepository) Option {
	return func(c *Container) {
		c.repo = repo
	}
}

// WithArtifactWriter replaces the directory writer rooted at Config.Generator.OutputDir.
func WithArtifactWriter(writer generator.ArtifactWriter) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

// WithThemeLoader replaces the filesystem go-theme manifest loader.
func WithThemeLoader(loader themes.ManifestLoader) Option {
	return func(c *Container) {
		c.themeLoad = loader
	}
}

// WithClock overrides the clock used for publish checks and scaffolds.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	if err := c.configureLanguages(); err != nil {
		return nil, err
	}
	if err := c.configureContent(); err != nil {
		return nil, err
	}
	if err := c.configureGenerator(); err != nil {
		return nil, err
	}
	if err := c.configurePresentation(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "folio").Debug("container.configured",
		"content_dir", cfg.Content.Dir,
		"content_type", cfg.Content.Type,
		"locales", c.languages.Locales(),
		"logging_provider", cfg.Logging.Provider,
	)
	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil {
		return nil
	}
	provider, err := NewLoggerProvider(c.Config.Logging, c.logOutput)
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureLanguages() error {
	set, err := i18n.NewSet(i18n.FromModuleConfig(c.Config.I18N.DefaultLocale, c.Config.I18N.Locales))
	if err != nil {
		return fmt.Errorf("di: language set: %w", err)
	}
	translator, err := i18n.NewTranslator(set)
	if err != nil {
		return fmt.Errorf("di: translator: %w", err)
	}
	c.languages = set
	c.translator = translator
	return nil
}

func (c *Container) configureContent() error {
	if c.repo == nil {
		c.repo = content.NewDirRepository(c.Config.Content.Dir)
	}
	c.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: c.Config.Markdown.Extensions,
		Sanitize:   c.Config.Markdown.Sanitize,
		HardWraps:  c.Config.Markdown.HardWraps,
		SafeMode:   c.Config.Markdown.SafeMode,
	})

	svc, err := content.NewService(c.repo,
		content.WithLanguages(c.languages),
		content.WithLogger(logging.ContentLogger(c.loggerProvider)),
		content.WithProduction(c.Config.Content.Production),
		content.WithWordsPerMinute(c.Config.Content.WordsPerMinute),
		content.WithDefaultAuthor(c.Config.Site.Author),
	)
	if err != nil {
		return err
	}
	c.content = svc

	linter, err := lint.New(c.repo, svc, lint.WithLogger(logging.LintLogger(c.loggerProvider)))
	if err != nil {
		return err
	}
	c.linter = linter
	return nil
}

func (c *Container) configureGenerator() error {
	writer := c.writer
	if writer == nil {
		writer = generator.NewDirWriter(c.Config.Generator.OutputDir)
	}
	svc, err := generator.NewService(generator.Config{
		OutputDir:       c.Config.Generator.OutputDir,
		ContentType:     c.Config.Content.Type,
		GenerateFeeds:   c.Config.Generator.GenerateFeeds,
		GenerateSitemap: c.Config.Generator.GenerateSitemap,
		GenerateRobots:  c.Config.Generator.GenerateRobots,
		Site:            c.SiteMetadata(),
	}, generator.Dependencies{
		Content: c.content,
		Parser:  c.parser,
		Writer:  writer,
		Logger:  logging.GeneratorLogger(c.loggerProvider),
	}, generator.WithClock(c.clock))
	if err != nil {
		return err
	}
	c.generator = svc
	return nil
}

func (c *Container) configurePresentation() error {
	c.seo = seo.NewBuilder(c.SiteMetadata(), c.languages, c.translator)

	switcher, err := themes.NewSwitcher(themes.SwitcherConfig{
		DefaultMode:  c.Config.Themes.DefaultMode,
		CookieName:   c.Config.Themes.CookieName,
		CookieMaxAge: c.Config.Themes.CookieMaxAge,
		SecureCookie: c.Config.Themes.SecureCookie,
	})
	if err != nil {
		return err
	}
	c.switcher = switcher

	c.catalog = themes.NewCatalog(themes.CatalogConfig{
		Dir:               c.Config.Themes.Dir,
		Name:              c.Config.Themes.Name,
		CSSVariablePrefix: c.Config.Themes.CSSVariablePrefix,
	}, c.themeLoad)
	return c.catalog.Load()
}

// SiteMetadata converts the site section of the config.
func (c *Container) SiteMetadata() generator.SiteMetadata {
	return generator.SiteMetadata{
		Title:        c.Config.Site.Title,
		Description:  c.Config.Site.Description,
		BaseURL:      c.Config.Site.BaseURL,
		Author:       c.Config.Site.Author,
		AuthorEmail:  c.Config.Site.AuthorEmail,
		Descriptions: c.Config.Site.Descriptions,
	}
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

func (c *Container) Languages() *i18n.Set { return c.languages }

func (c *Container) Translator() *i18n.Translator { return c.translator }

func (c *Container) Parser() interfaces.MarkdownParser { return c.parser }

func (c *Container) ContentService() content.Service { return c.content }

func (c *Container) GeneratorService() generator.Service { return c.generator }

func (c *Container) Linter() *lint.Linter { return c.linter }

func (c *Container) SEO() *seo.Builder { return c.seo }

func (c *Container) Switcher() *themes.Switcher { return c.switcher }

func (c *Container) Themes() *themes.Catalog { return c.catalog }

// SiteHandlers builds the HTTP route handlers.
func (c *Container) SiteHandlers() (*sitehttp.SiteHandlers, error) {
	return sitehttp.NewSiteHandlers(sitehttp.SiteConfig{ContentType: c.Config.Content.Type}, sitehttp.SiteDependencies{
		Content:    c.content,
		Generator:  c.generator,
		Parser:     c.parser,
		SEO:        c.seo,
		Translator: c.translator,
		Switcher:   c.switcher,
		Themes:     c.catalog,
		Logger:     logging.HTTPLogger(c.loggerProvider),
	})
}

// HTTPServer builds the echo server with the site routes mounted.
func (c *Container) HTTPServer() (*sitehttp.Server, error) {
	site, err := c.SiteHandlers()
	if err != nil {
		return nil, err
	}
	return sitehttp.NewServer(sitehttp.ServerConfig{
		Address:         c.Config.Server.Address,
		CORSOrigins:     c.Config.Server.CORSOrigins,
		UseHTTP2:        c.Config.Server.UseHTTP2,
		ShutdownTimeout: c.Config.Server.ShutdownTimeout,
	}, site, logging.HTTPLogger(c.loggerProvider)), nil
}

// BuildSiteHandler returns the build command handler.
func (c *Container) BuildSiteHandler() *sitecmd.BuildSiteHandler {
	return sitecmd.NewBuildSiteHandler(c.generator, commands.CommandLogger(c.loggerProvider, "site"))
}

// LintContentHandler returns the lint command handler.
func (c *Container) LintContentHandler() *sitecmd.LintContentHandler {
	return sitecmd.NewLintContentHandler(c.linter, commands.CommandLogger(c.loggerProvider, "lint"))
}

// NewPostHandler returns the scaffold command handler writing under Config.Content.Dir.
func (c *Container) NewPostHandler() *sitecmd.NewPostHandler {
	return sitecmd.NewNewPostHandler(sitecmd.ScaffoldConfig{
		Root:      filepath.Clean(c.Config.Content.Dir),
		Languages: c.languages,
		Now:       c.clock,
	}, commands.CommandLogger(c.loggerProvider, "content"))
}
