package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FOLIO"

// LoadOptions points Load at its inputs. Empty fields use the defaults:
// ./config.yaml when present and ./.env when present.
type LoadOptions struct {
	ConfigFile string
	EnvFile    string
}

// Load merges DefaultConfig, the config file, the .env file and FOLIO_*
// environment variables, in increasing precedence, and validates the result.
// An explicitly named config or env file must exist.
func Load(opts LoadOptions) (Config, error) {
	if err := loadDotEnv(opts.EnvFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("folio config: read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("folio config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("folio config: load %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override keys that the
// config file does not mention.
func setDefaults(v *viper.Viper, cfg Config) {
	defaults := map[string]any{
		"site.title":        cfg.Site.Title,
		"site.description":  cfg.Site.Description,
		"site.base_url":     cfg.Site.BaseURL,
		"site.author":       cfg.Site.Author,
		"site.author_email": cfg.Site.AuthorEmail,
		"site.descriptions": cfg.Site.Descriptions,

		"content.dir":              cfg.Content.Dir,
		"content.type":             cfg.Content.Type,
		"content.production":       cfg.Content.Production,
		"content.words_per_minute": cfg.Content.WordsPerMinute,

		"i18n.default_locale": cfg.I18N.DefaultLocale,
		"i18n.locales":        cfg.I18N.Locales,

		"markdown.extensions": cfg.Markdown.Extensions,
		"markdown.sanitize":   cfg.Markdown.Sanitize,
		"markdown.hard_wraps": cfg.Markdown.HardWraps,
		"markdown.safe_mode":  cfg.Markdown.SafeMode,

		"generator.output_dir":       cfg.Generator.OutputDir,
		"generator.generate_feeds":   cfg.Generator.GenerateFeeds,
		"generator.generate_sitemap": cfg.Generator.GenerateSitemap,
		"generator.generate_robots":  cfg.Generator.GenerateRobots,

		"themes.default_mode":        cfg.Themes.DefaultMode,
		"themes.cookie_name":         cfg.Themes.CookieName,
		"themes.cookie_max_age":      cfg.Themes.CookieMaxAge,
		"themes.secure_cookie":       cfg.Themes.SecureCookie,
		"themes.dir":                 cfg.Themes.Dir,
		"themes.name":                cfg.Themes.Name,
		"themes.css_variable_prefix": cfg.Themes.CSSVariablePrefix,

		"server.address":          cfg.Server.Address,
		"server.cors_origins":     cfg.Server.CORSOrigins,
		"server.use_http2":        cfg.Server.UseHTTP2,
		"server.shutdown_timeout": cfg.Server.ShutdownTimeout,

		"logging.provider":   cfg.Logging.Provider,
		"logging.level":      cfg.Logging.Level,
		"logging.format":     cfg.Logging.Format,
		"logging.add_source": cfg.Logging.AddSource,
		"logging.focus":      cfg.Logging.Focus,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
