package logrus

import (
	"context"
	"fmt"
	"io"
	"strings"

	sirupsen "github.com/sirupsen/logrus"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Config selects the logrus formatter and level.
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// Provider scopes logrus entries per folio module.
type Provider struct {
	root *sirupsen.Logger
}

// NewProvider builds a logrus root logger. JSON is the default format, text
// the alternative.
func NewProvider(cfg Config) (*Provider, error) {
	root := sirupsen.New()
	if cfg.Output != nil {
		root.SetOutput(cfg.Output)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		root.SetFormatter(&sirupsen.JSONFormatter{})
	case "text", "console":
		root.SetFormatter(&sirupsen.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return nil, fmt.Errorf("logging: unsupported logrus format %q", cfg.Format)
	}

	root.SetLevel(sirupsen.InfoLevel)
	if level := strings.TrimSpace(cfg.Level); level != "" {
		parsed, err := sirupsen.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		root.SetLevel(parsed)
	}

	return &Provider{root: root}, nil
}

// GetLogger satisfies interfaces.LoggerProvider.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	entry := sirupsen.NewEntry(p.root)
	if name = strings.TrimSpace(name); name != "" {
		entry = entry.WithField("logger", name)
	}
	return &adapter{entry: entry}
}

type adapter struct {
	entry *sirupsen.Entry
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (l *adapter) Trace(msg string, args ...any) { l.log(sirupsen.TraceLevel, msg, args) }
func (l *adapter) Debug(msg string, args ...any) { l.log(sirupsen.DebugLevel, msg, args) }
func (l *adapter) Info(msg string, args ...any)  { l.log(sirupsen.InfoLevel, msg, args) }
func (l *adapter) Warn(msg string, args ...any)  { l.log(sirupsen.WarnLevel, msg, args) }
func (l *adapter) Error(msg string, args ...any) { l.log(sirupsen.ErrorLevel, msg, args) }

// Fatal records the entry at fatal level. The process is left running.
func (l *adapter) Fatal(msg string, args ...any) { l.log(sirupsen.FatalLevel, msg, args) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	return &adapter{entry: l.entry.WithFields(sirupsen.Fields(fields))}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	entry := l.entry.WithContext(ctx)
	if fields := logging.ContextFields(ctx); len(fields) > 0 {
		entry = entry.WithFields(sirupsen.Fields(fields))
	}
	return &adapter{entry: entry}
}

func (l *adapter) log(level sirupsen.Level, msg string, args []any) {
	entry := l.entry
	if len(args) > 0 {
		entry = entry.WithFields(argsToFields(args))
	}
	entry.Log(level, msg)
}

func argsToFields(args []any) sirupsen.Fields {
	fields := sirupsen.Fields{}
	for i := 0; i < len(args); i += 2 {
		if i == len(args)-1 {
			fields[fmt.Sprintf("field_%d", i)] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = fmt.Sprintf("field_%d", i/2)
		}
		fields[key] = args[i+1]
	}
	return fields
}
