package folio

import "github.com/goliatone/go-folio/internal/runtimeconfig"

var (
	ErrContentDirRequired     = runtimeconfig.ErrContentDirRequired
	ErrContentTypeInvalid     = runtimeconfig.ErrContentTypeInvalid
	ErrWordsPerMinuteInvalid  = runtimeconfig.ErrWordsPerMinuteInvalid
	ErrDefaultLocaleRequired  = runtimeconfig.ErrDefaultLocaleRequired
	ErrOutputDirRequired      = runtimeconfig.ErrOutputDirRequired
	ErrBaseURLInvalid         = runtimeconfig.ErrBaseURLInvalid
	ErrThemeModeInvalid       = runtimeconfig.ErrThemeModeInvalid
	ErrServerAddressRequired  = runtimeconfig.ErrServerAddressRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	SiteConfig      = runtimeconfig.SiteConfig
	ContentConfig   = runtimeconfig.ContentConfig
	I18NConfig      = runtimeconfig.I18NConfig
	MarkdownConfig  = runtimeconfig.MarkdownConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	ThemeConfig     = runtimeconfig.ThemeConfig
	ServerConfig    = runtimeconfig.ServerConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	LoadOptions     = runtimeconfig.LoadOptions
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads config.yaml, .env and FOLIO_* variables on top of the defaults.
func LoadConfig(opts LoadOptions) (Config, error) {
	return runtimeconfig.Load(opts)
}
