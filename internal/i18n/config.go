package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

var (
	ErrDefaultLocaleRequired = errors.New("i18n: default locale is required")
	ErrUnsupportedLocale     = errors.New("i18n: unsupported locale")
)

// Config lists the closed set of languages the site publishes in.
type Config struct {
	DefaultLocale string
	Locales       []string
}

// FromModuleConfig mirrors the runtime config shape.
func FromModuleConfig(defaultLocale string, locales []string) Config {
	return Config{
		DefaultLocale: defaultLocale,
		Locales:       locales,
	}
}

// Set is the validated language set. The default locale is always first and
// is the only one published without a URL prefix or filename suffix.
type Set struct {
	defaultLocale string
	locales       []string
	index         map[string]struct{}
	matcher       language.Matcher
}

// NewSet normalises codes to lower case, drops duplicates and makes sure the
// default locale is part of the set.
func NewSet(cfg Config) (*Set, error) {
	def := normalizeCode(cfg.DefaultLocale)
	if def == "" {
		return nil, ErrDefaultLocaleRequired
	}

	locales := []string{def}
	index := map[string]struct{}{def: {}}
	for _, code := range cfg.Locales {
		code = normalizeCode(code)
		if code == "" {
			continue
		}
		if _, ok := index[code]; ok {
			continue
		}
		if _, err := language.Parse(code); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedLocale, code, err)
		}
		index[code] = struct{}{}
		locales = append(locales, code)
	}

	tags := make([]language.Tag, 0, len(locales))
	for _, code := range locales {
		tags = append(tags, language.Make(code))
	}

	return &Set{
		defaultLocale: def,
		locales:       locales,
		index:         index,
		matcher:       language.NewMatcher(tags),
	}, nil
}

// MustSet is NewSet for static configuration in tests and examples.
func MustSet(defaultLocale string, locales ...string) *Set {
	set, err := NewSet(Config{DefaultLocale: defaultLocale, Locales: locales})
	if err != nil {
		panic(err)
	}
	return set
}

// Default returns the default locale code.
func (s *Set) Default() string {
	return s.defaultLocale
}

// Locales returns every supported code, default first.
func (s *Set) Locales() []string {
	return append([]string(nil), s.locales...)
}

// Supported reports whether code is part of the closed set. Matching is exact.
func (s *Set) Supported(code string) bool {
	_, ok := s.index[code]
	return ok
}

// IsDefault reports whether code is the default locale.
func (s *Set) IsDefault(code string) bool {
	return code == s.defaultLocale
}

// Prefix returns the URL prefix for a locale: empty for the default locale,
// "/<code>" otherwise.
func (s *Set) Prefix(code string) string {
	if code == "" || s.IsDefault(code) {
		return ""
	}
	return "/" + code
}

// Path prefixes a site-relative path with the locale segment.
func (s *Set) Path(code, path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	prefix := s.Prefix(code)
	if prefix != "" && path == "/" {
		return prefix
	}
	return prefix + path
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
