package di

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-folio/internal/logging/console"
	"github.com/goliatone/go-folio/internal/logging/gologger"
	logrusadapter "github.com/goliatone/go-folio/internal/logging/logrus"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// NewLoggerProvider builds the provider named by cfg.Provider. output only
// applies to the console and logrus providers; nil means stdout.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig, output io.Writer) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		opts := console.Options{Writer: output}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "logrus":
		provider, err := logrusadapter.NewProvider(logrusadapter.Config{
			Level:  cfg.Level,
			Format: cfg.Format,
			Output: output,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %q", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}
