package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

var (
	// ErrContentServiceRequired is returned when the generator has no content source.
	ErrContentServiceRequired = errors.New("generator: content service is required")
	// ErrUnsupportedLocale is returned for a feed locale outside the language set.
	ErrUnsupportedLocale = errors.New("generator: unsupported locale")
)

// Service renders and writes the site artifacts.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	RSS(ctx context.Context, lang string) (string, error)
	Sitemap(ctx context.Context) (string, error)
	Robots() string
}

// Config captures generator behaviour toggles.
type Config struct {
	OutputDir       string
	ContentType     string
	GenerateFeeds   bool
	GenerateSitemap bool
	GenerateRobots  bool
	Site            SiteMetadata
}

// BuildOptions narrows a build run.
type BuildOptions struct {
	// Locales limits which feeds are written. Empty means every locale.
	Locales []string
	DryRun  bool
}

// Artifact is one file produced by a build.
type Artifact struct {
	Path     string `json:"path"`
	Locale   string `json:"locale,omitempty"`
	Category string `json:"category"`
	Bytes    int    `json:"bytes"`
	Checksum string `json:"checksum"`
}

// BuildResult reports what a build produced.
type BuildResult struct {
	BuildID   uuid.UUID     `json:"build_id"`
	Artifacts []Artifact    `json:"artifacts"`
	Items     int           `json:"items"`
	Locales   []string      `json:"locales"`
	Duration  time.Duration `json:"duration"`
	DryRun    bool          `json:"dry_run"`
}

// Dependencies lists the collaborators of the generator.
type Dependencies struct {
	Content content.Service
	Parser  interfaces.MarkdownParser
	Writer  ArtifactWriter
	Logger  interfaces.Logger
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used for publish checks and build dates.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces build identifiers.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the build id source.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

type service struct {
	cfg    Config
	deps   Dependencies
	logger interfaces.Logger
	now    func() time.Time
	id     IDGenerator
}

// NewService wires a generator.
func NewService(cfg Config, deps Dependencies, opts ...ServiceOption) (Service, error) {
	if deps.Content == nil {
		return nil, ErrContentServiceRequired
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "blog"
	}
	if deps.Writer == nil {
		deps.Writer = NewDirWriter(cfg.OutputDir)
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	s := &service{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		now:    time.Now,
		id:     uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *service) RSS(ctx context.Context, lang string) (string, error) {
	languages := s.deps.Content.Languages()
	if !languages.Supported(lang) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, lang)
	}
	items, err := s.deps.Content.Collection(ctx, s.cfg.ContentType, lang)
	if err != nil {
		return "", err
	}
	return BuildRSS(FeedInput{
		Site:      s.cfg.Site,
		Languages: languages,
		Lang:      lang,
		Items:     items,
		Parser:    s.deps.Parser,
		Now:       s.now(),
	})
}

func (s *service) Sitemap(ctx context.Context) (string, error) {
	items, err := s.deps.Content.Collection(ctx, s.cfg.ContentType, s.deps.Content.Languages().Default())
	if err != nil {
		return "", err
	}
	return BuildSitemap(s.cfg.Site, items, s.now()), nil
}

func (s *service) Robots() string {
	return BuildRobots(s.cfg.Site, s.cfg.GenerateSitemap)
}

// Build writes rss.xml for the default locale, <lang>/rss.xml for the others,
// sitemap.xml and robots.txt, according to Config.
func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	started := s.now()
	languages := s.deps.Content.Languages()

	locales := opts.Locales
	if len(locales) == 0 {
		locales = languages.Locales()
	}
	for _, lang := range locales {
		if !languages.Supported(lang) {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, lang)
		}
	}

	result := &BuildResult{
		BuildID: s.id(),
		Locales: append([]string(nil), locales...),
		DryRun:  opts.DryRun,
	}
	logger := logging.WithFields(s.logger, map[string]any{"build_id": result.BuildID.String()})

	writer := s.deps.Writer
	if opts.DryRun {
		writer = NewMemoryWriter()
	}
	if err := writer.EnsureDir(ctx, "."); err != nil {
		return nil, fmt.Errorf("generator: prepare output: %w", err)
	}

	emit := func(req WriteFileRequest) error {
		req.Checksum = computeHash(req.Content)
		if err := writer.WriteFile(ctx, req); err != nil {
			return err
		}
		result.Artifacts = append(result.Artifacts, Artifact{
			Path:     req.Path,
			Locale:   req.Locale,
			Category: string(req.Category),
			Bytes:    len(req.Content),
			Checksum: req.Checksum,
		})
		logger.Debug("generator.artifact_written", "path", req.Path, "bytes", len(req.Content))
		return nil
	}

	if s.cfg.GenerateFeeds {
		for _, lang := range locales {
			feed, err := s.RSS(ctx, lang)
			if err != nil {
				return nil, err
			}
			target := "rss.xml"
			if !languages.IsDefault(lang) {
				target = path.Join(lang, "rss.xml")
			}
			if err := emit(WriteFileRequest{
				Path:        target,
				Content:     []byte(feed),
				Locale:      lang,
				Category:    CategoryFeed,
				ContentType: "application/rss+xml",
			}); err != nil {
				return nil, err
			}
		}
	}

	items, err := s.deps.Content.Collection(ctx, s.cfg.ContentType, languages.Default())
	if err != nil {
		return nil, err
	}
	result.Items = len(FilterPublished(items, started))

	if s.cfg.GenerateSitemap {
		sitemap := BuildSitemap(s.cfg.Site, items, started)
		if err := emit(WriteFileRequest{
			Path:        "sitemap.xml",
			Content:     []byte(sitemap),
			Category:    CategorySitemap,
			ContentType: "application/xml",
		}); err != nil {
			return nil, err
		}
	}

	if s.cfg.GenerateRobots {
		if err := emit(WriteFileRequest{
			Path:        "robots.txt",
			Content:     []byte(s.Robots()),
			Category:    CategoryRobots,
			ContentType: "text/plain",
		}); err != nil {
			return nil, err
		}
	}

	result.Duration = s.now().Sub(started)
	logger.Info("generator.build_completed",
		"artifacts", len(result.Artifacts),
		"items", result.Items,
		"dry_run", opts.DryRun,
	)
	return result, nil
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
