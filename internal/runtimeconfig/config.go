package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-folio/internal/themes"
)

var (
	ErrContentDirRequired     = errors.New("folio config: content directory is required")
	ErrContentTypeInvalid     = errors.New("folio config: content type must be a lowercase directory name")
	ErrWordsPerMinuteInvalid  = errors.New("folio config: words per minute must be zero or positive")
	ErrDefaultLocaleRequired  = errors.New("folio config: default locale is required")
	ErrOutputDirRequired      = errors.New("folio config: generator output directory is required")
	ErrBaseURLInvalid         = errors.New("folio config: site base url must be an absolute http(s) url")
	ErrThemeModeInvalid       = errors.New("folio config: theme default mode is invalid")
	ErrServerAddressRequired  = errors.New("folio config: server address is required")
	ErrLoggingProviderUnknown = errors.New("folio config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("folio config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("folio config: logging format is invalid")
)

var contentTypePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Config aggregates every runtime setting. Keys use snake_case in files and
// FOLIO_<SECTION>_<KEY> in the environment.
type Config struct {
	Site      SiteConfig      `mapstructure:"site"`
	Content   ContentConfig   `mapstructure:"content"`
	I18N      I18NConfig      `mapstructure:"i18n"`
	Markdown  MarkdownConfig  `mapstructure:"markdown"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Themes    ThemeConfig     `mapstructure:"themes"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SiteConfig feeds feeds, the sitemap and page metadata.
type SiteConfig struct {
	Title        string            `mapstructure:"title"`
	Description  string            `mapstructure:"description"`
	BaseURL      string            `mapstructure:"base_url"`
	Author       string            `mapstructure:"author"`
	AuthorEmail  string            `mapstructure:"author_email"`
	Descriptions map[string]string `mapstructure:"descriptions"`
}

// ContentConfig locates the content tree.
type ContentConfig struct {
	Dir            string `mapstructure:"dir"`
	Type           string `mapstructure:"type"`
	Production     bool   `mapstructure:"production"`
	WordsPerMinute int    `mapstructure:"words_per_minute"`
}

// I18NConfig lists the closed language set.
type I18NConfig struct {
	DefaultLocale string   `mapstructure:"default_locale"`
	Locales       []string `mapstructure:"locales"`
}

// MarkdownConfig mirrors interfaces.ParseOptions.
type MarkdownConfig struct {
	Extensions []string `mapstructure:"extensions"`
	Sanitize   bool     `mapstructure:"sanitize"`
	HardWraps  bool     `mapstructure:"hard_wraps"`
	SafeMode   bool     `mapstructure:"safe_mode"`
}

// GeneratorConfig controls which artifacts a build writes.
type GeneratorConfig struct {
	OutputDir       string `mapstructure:"output_dir"`
	GenerateFeeds   bool   `mapstructure:"generate_feeds"`
	GenerateSitemap bool   `mapstructure:"generate_sitemap"`
	GenerateRobots  bool   `mapstructure:"generate_robots"`
}

// ThemeConfig configures mode switching and the optional go-theme manifest.
type ThemeConfig struct {
	DefaultMode       string        `mapstructure:"default_mode"`
	CookieName        string        `mapstructure:"cookie_name"`
	CookieMaxAge      time.Duration `mapstructure:"cookie_max_age"`
	SecureCookie      bool          `mapstructure:"secure_cookie"`
	Dir               string        `mapstructure:"dir"`
	Name              string        `mapstructure:"name"`
	CSSVariablePrefix string        `mapstructure:"css_variable_prefix"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	UseHTTP2        bool          `mapstructure:"use_http2"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:        "Folio",
			Description:  "Personal notes",
			BaseURL:      "http://localhost:8080",
			Descriptions: map[string]string{},
		},
		Content: ContentConfig{
			Dir:            "data",
			Type:           "blog",
			WordsPerMinute: 200,
		},
		I18N: I18NConfig{
			DefaultLocale: "en",
			Locales:       []string{"en", "es", "ca"},
		},
		Generator: GeneratorConfig{
			OutputDir:       "public",
			GenerateFeeds:   true,
			GenerateSitemap: true,
			GenerateRobots:  true,
		},
		Themes: ThemeConfig{
			DefaultMode:       string(themes.ModeSystem),
			CookieName:        themes.DefaultCookieName,
			CookieMaxAge:      365 * 24 * time.Hour,
			CSSVariablePrefix: "--folio",
		},
		Server: ServerConfig{
			Address:         ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if !contentTypePattern.MatchString(cfg.Content.Type) {
		return fmt.Errorf("%w: %q", ErrContentTypeInvalid, cfg.Content.Type)
	}
	if cfg.Content.WordsPerMinute < 0 {
		return ErrWordsPerMinuteInvalid
	}
	if strings.TrimSpace(cfg.I18N.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if base := strings.TrimSpace(cfg.Site.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("%w: %q", ErrBaseURLInvalid, base)
		}
	}
	if mode := strings.TrimSpace(cfg.Themes.DefaultMode); mode != "" {
		if _, err := themes.ParseMode(mode); err != nil {
			return fmt.Errorf("%w: %s", ErrThemeModeInvalid, mode)
		}
	}
	if strings.TrimSpace(cfg.Server.Address) == "" {
		return ErrServerAddressRequired
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %q", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func normalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return "console"
	}
	return provider
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "logrus":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	format = strings.ToLower(strings.TrimSpace(format))
	switch provider {
	case "gologger":
		return format == "json" || format == "console" || format == "pretty"
	case "logrus":
		return format == "json" || format == "text" || format == "console"
	default:
		return false
	}
}
