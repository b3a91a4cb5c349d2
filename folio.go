package folio

import (
	"context"

	sitecmd "github.com/goliatone/go-folio/internal/commands/site"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/di"
	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/lint"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// ContentService exports the content service contract for consumers of the folio package.
type ContentService = content.Service

// ContentItem exports a resolved content file.
type ContentItem = content.Item

// GeneratorService exports the artifact generator contract.
type GeneratorService = generator.Service

// BuildResult exports the outcome of a site build.
type BuildResult = generator.BuildResult

// LintReport exports the outcome of a lint pass.
type LintReport = lint.Report

// Command messages accepted by Module.
type (
	BuildSiteCommand   = sitecmd.BuildSiteCommand
	LintContentCommand = sitecmd.LintContentCommand
	NewPostCommand     = sitecmd.NewPostCommand
)

// Option configures the module container.
type Option = di.Option

var (
	WithLoggerProvider = di.WithLoggerProvider
	WithLogOutput      = di.WithLogOutput
	WithRepository     = di.WithRepository
	WithArtifactWriter = di.WithArtifactWriter
	WithClock          = di.WithClock
)

// Module is the runtime facade over the wired services.
type Module struct {
	container *di.Container
}

// New validates cfg and wires every service.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying dependency container.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.container.Config
}

// Content returns the content service.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

// Generator returns the feed and sitemap generator.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Logger returns a named logger from the configured provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return m.container.LoggerProvider().GetLogger(name)
}

// Serve runs the HTTP server until ctx is cancelled.
func (m *Module) Serve(ctx context.Context) error {
	server, err := m.container.HTTPServer()
	if err != nil {
		return err
	}
	return server.Start(ctx)
}

// Build writes the site artifacts.
func (m *Module) Build(ctx context.Context, msg BuildSiteCommand) error {
	return m.container.BuildSiteHandler().Execute(ctx, msg)
}

// Lint checks a content type.
func (m *Module) Lint(ctx context.Context, msg LintContentCommand) error {
	return m.container.LintContentHandler().Execute(ctx, msg)
}

// NewPost scaffolds a content file.
func (m *Module) NewPost(ctx context.Context, msg NewPostCommand) error {
	return m.container.NewPostHandler().Execute(ctx, msg)
}
