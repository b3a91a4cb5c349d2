package sitecmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-slug"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-folio/internal/commands"
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/i18n"
	"github.com/goliatone/go-folio/internal/lint"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

var (
	// ErrGeneratorRequired is returned when the build handler has no generator.
	ErrGeneratorRequired = errors.New("site command: generator service is required")
	// ErrLinterRequired is returned when the lint handler has no linter.
	ErrLinterRequired = errors.New("site command: linter is required")
	// ErrLintIssues is returned when a lint run finds issues and the command asked to fail on them.
	ErrLintIssues = errors.New("site command: lint reported issues")
	// ErrPostExists is returned when the scaffold target already exists.
	ErrPostExists = errors.New("site command: post already exists")
	// ErrInvalidSlug is returned when no valid slug can be derived for a new post.
	ErrInvalidSlug = errors.New("site command: invalid slug")
	// ErrUnsupportedLocale is returned for a scaffold locale outside the language set.
	ErrUnsupportedLocale = errors.New("site command: unsupported locale")
)

var (
	_ command.Commander[BuildSiteCommand]   = (*BuildSiteHandler)(nil)
	_ command.Commander[LintContentCommand] = (*LintContentHandler)(nil)
	_ command.Commander[NewPostCommand]     = (*NewPostHandler)(nil)
)

// BuildSiteHandler runs generator builds through the shared command handler.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided generator service.
func NewBuildSiteHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil {
			return ErrGeneratorRequired
		}
		result, err := service.Build(ctx, generator.BuildOptions{
			Locales: normalizeLocales(msg.Locales),
			DryRun:  msg.DryRun,
		})
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("site.build"),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Locales) > 0 {
				fields["locales"] = strings.Join(msg.Locales, ",")
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ContentLinter is the part of lint.Linter the lint handler needs.
type ContentLinter interface {
	Lint(ctx context.Context, contentType string) (*lint.Report, error)
}

// LintContentHandler runs content lint passes.
type LintContentHandler struct {
	inner *commands.Handler[LintContentCommand]
}

// NewLintContentHandler constructs a handler around linter.
func NewLintContentHandler(linter ContentLinter, logger interfaces.Logger, opts ...commands.HandlerOption[LintContentCommand]) *LintContentHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg LintContentCommand) error {
		if linter == nil {
			return ErrLinterRequired
		}
		report, err := linter.Lint(ctx, msg.ContentType)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(report)
		}
		if !report.OK() {
			baseLogger.Warn("site.lint.issues", "content_type", msg.ContentType, "issues", len(report.Issues))
			if msg.FailOnIssues {
				return fmt.Errorf("%w: %d in %s", ErrLintIssues, len(report.Issues), msg.ContentType)
			}
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[LintContentCommand]{
		commands.WithLogger[LintContentCommand](baseLogger),
		commands.WithOperation[LintContentCommand]("site.lint"),
		commands.WithMessageFields(func(msg LintContentCommand) map[string]any {
			return map[string]any{"content_type": msg.ContentType}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[LintContentCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &LintContentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[LintContentCommand].
func (h *LintContentHandler) Execute(ctx context.Context, msg LintContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ScaffoldConfig locates new posts on disk.
type ScaffoldConfig struct {
	// Root is the content directory holding one folder per content type.
	Root      string
	Languages *i18n.Set
	Now       func() time.Time
}

// NewPostHandler writes frontmatter scaffolds for new posts.
type NewPostHandler struct {
	inner *commands.Handler[NewPostCommand]
}

type scaffoldFrontMatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Spoiler string   `yaml:"spoiler,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	Draft   bool     `yaml:"draft,omitempty"`
}

// NewNewPostHandler constructs the scaffold handler.
func NewNewPostHandler(cfg ScaffoldConfig, logger interfaces.Logger, opts ...commands.HandlerOption[NewPostCommand]) *NewPostHandler {
	baseLogger := commands.EnsureLogger(logger)
	if cfg.Languages == nil {
		cfg.Languages = i18n.MustSet("en")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Root == "" {
		cfg.Root = "data"
	}

	exec := func(ctx context.Context, msg NewPostCommand) error {
		target, err := scaffoldPost(ctx, cfg, msg)
		if err != nil {
			return err
		}
		baseLogger.Info("site.new_post.created", "path", target)
		if msg.ResultCallback != nil {
			msg.ResultCallback(target)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[NewPostCommand]{
		commands.WithLogger[NewPostCommand](baseLogger),
		commands.WithOperation[NewPostCommand]("site.new_post"),
		commands.WithMessageFields(func(msg NewPostCommand) map[string]any {
			fields := map[string]any{"content_type": msg.ContentType}
			if msg.Lang != "" {
				fields["locale"] = msg.Lang
			}
			if msg.Slug != "" {
				fields["slug"] = msg.Slug
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[NewPostCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &NewPostHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[NewPostCommand].
func (h *NewPostHandler) Execute(ctx context.Context, msg NewPostCommand) error {
	return h.inner.Execute(ctx, msg)
}

func scaffoldPost(ctx context.Context, cfg ScaffoldConfig, msg NewPostCommand) (string, error) {
	lang := strings.ToLower(strings.TrimSpace(msg.Lang))
	if lang == "" {
		lang = cfg.Languages.Default()
	}
	if !cfg.Languages.Supported(lang) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, lang)
	}

	name, err := postSlug(msg)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(cfg.Root, msg.ContentType)
	for _, ext := range content.Extensions {
		existing := filepath.Join(dir, content.FileName(name, lang, ext, cfg.Languages))
		if _, err := os.Stat(existing); err == nil && !msg.Force {
			return "", fmt.Errorf("%w: %s", ErrPostExists, existing)
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	date := msg.Date
	if date == "" {
		date = cfg.Now().UTC().Format(time.DateOnly)
	}
	document, err := renderScaffold(scaffoldFrontMatter{
		Title:   strings.TrimSpace(msg.Title),
		Date:    date,
		Spoiler: strings.TrimSpace(msg.Spoiler),
		Tags:    msg.Tags,
		Draft:   msg.Draft,
	})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("site command: create %s: %w", dir, err)
	}
	target := filepath.Join(dir, content.FileName(name, lang, ".mdx", cfg.Languages))
	if err := os.WriteFile(target, document, 0o644); err != nil {
		return "", fmt.Errorf("site command: write %s: %w", target, err)
	}
	return target, nil
}

func postSlug(msg NewPostCommand) (string, error) {
	source := strings.TrimSpace(msg.Slug)
	if source == "" {
		source = msg.Title
	}
	normalized, err := slug.Normalize(source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSlug, err)
	}
	if !content.ValidSlug(normalized) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, normalized)
	}
	return normalized, nil
}

func renderScaffold(fm scaffoldFrontMatter) ([]byte, error) {
	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("site command: encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	return buf.Bytes(), nil
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}
	out := make([]string, 0, len(locales))
	for _, locale := range locales {
		if trimmed := strings.ToLower(strings.TrimSpace(locale)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
