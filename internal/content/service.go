package content

import (
	"context"

	"github.com/goliatone/go-folio/internal/i18n"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Service exposes the content pipeline: single item resolution with locale
// fallback, collections, navigation and the tag index.
type Service interface {
	Resolve(ctx context.Context, contentType, slug, lang string) (*Item, error)
	Variants(ctx context.Context, contentType, slug string) ([]string, error)
	Collection(ctx context.Context, contentType, lang string) ([]*Item, error)
	CollectionWithReport(ctx context.Context, contentType, lang string) ([]*Item, *BuildReport, error)
	Navigation(ctx context.Context, contentType, slug, lang string) (NavigationPair, error)
	AllTags(ctx context.Context, contentType, lang string) ([]string, error)
	TagIndex(ctx context.Context, contentType, lang string) ([]Tag, error)
	ResolveTagSlug(ctx context.Context, contentType, tagSlug string) (string, bool, error)
	PostsByTagSlug(ctx context.Context, contentType, tagSlug, lang string) ([]*Item, error)
	Languages() *i18n.Set
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger overrides the logger used for collection diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProduction drops drafts from collections when enabled.
func WithProduction(enabled bool) ServiceOption {
	return func(s *service) {
		s.production = enabled
	}
}

// WithWordsPerMinute sets the reading speed used for reading time.
func WithWordsPerMinute(wpm int) ServiceOption {
	return func(s *service) {
		if wpm > 0 {
			s.wordsPerMinute = wpm
		}
	}
}

// WithLanguages replaces the default en/es/ca language set.
func WithLanguages(set *i18n.Set) ServiceOption {
	return func(s *service) {
		if set != nil {
			s.languages = set
		}
	}
}

// WithDefaultAuthor fills Item.Author when a file does not name one.
func WithDefaultAuthor(author string) ServiceOption {
	return func(s *service) {
		s.defaultAuthor = author
	}
}

type service struct {
	repo           interfaces.ContentRepository
	languages      *i18n.Set
	logger         interfaces.Logger
	production     bool
	wordsPerMinute int
	defaultAuthor  string
}

// DefaultLanguages is the language set used when none is configured.
func DefaultLanguages() *i18n.Set {
	return i18n.MustSet("en", "es", "ca")
}

// NewService constructs the content service over repo.
func NewService(repo interfaces.ContentRepository, opts ...ServiceOption) (Service, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	s := &service{
		repo:           repo,
		languages:      DefaultLanguages(),
		logger:         logging.NoOp(),
		wordsPerMinute: markdown.DefaultWordsPerMinute,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *service) Languages() *i18n.Set {
	return s.languages
}
