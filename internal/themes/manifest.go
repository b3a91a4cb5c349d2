package themes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

// ManifestLoader reads a go-theme manifest from a theme directory.
type ManifestLoader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

type fsManifestLoader struct{}

func (fsManifestLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" || cleaned == "." {
		return nil, fmt.Errorf("themes: theme path required")
	}
	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

// CatalogConfig points at an optional theme directory.
type CatalogConfig struct {
	Dir               string
	Name              string
	CSSVariablePrefix string
}

// Context is the theme data handed to views for one mode.
type Context struct {
	Mode     Mode                `json:"mode"`
	Theme    string              `json:"theme,omitempty"`
	Variant  string              `json:"variant,omitempty"`
	Tokens   map[string]string   `json:"tokens,omitempty"`
	CSSVars  map[string]string   `json:"css_vars,omitempty"`
	AssetURL func(string) string `json:"-"`
}

// Catalog maps modes onto go-theme variants. Light and dark select the
// variant of the same name; system uses the manifest default.
type Catalog struct {
	cfg      CatalogConfig
	loader   ManifestLoader
	registry *gotheme.MemoryRegistry

	mu       sync.Mutex
	manifest *gotheme.Manifest
}

// NewCatalog prepares a catalog. Nothing is read until Load is called.
func NewCatalog(cfg CatalogConfig, loader ManifestLoader) *Catalog {
	if loader == nil {
		loader = fsManifestLoader{}
	}
	return &Catalog{cfg: cfg, loader: loader, registry: gotheme.NewRegistry()}
}

// Enabled reports whether a theme directory is configured.
func (c *Catalog) Enabled() bool {
	return c != nil && strings.TrimSpace(c.cfg.Dir) != ""
}

// Load reads and registers the manifest once.
func (c *Catalog) Load() error {
	if !c.Enabled() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.manifest != nil {
		return nil
	}

	manifest, err := c.loader.Load(c.cfg.Dir)
	if err != nil {
		return fmt.Errorf("themes: load manifest from %s: %w", c.cfg.Dir, err)
	}
	normalized := *manifest
	if name := strings.TrimSpace(c.cfg.Name); name != "" {
		normalized.Name = name
	}
	if strings.TrimSpace(normalized.Name) == "" {
		return fmt.Errorf("themes: manifest in %s has no name", c.cfg.Dir)
	}
	if err := c.registry.Register(&normalized); err != nil {
		return fmt.Errorf("themes: register manifest: %w", err)
	}
	c.manifest = &normalized
	return nil
}

// Context resolves mode against the loaded manifest. Without a manifest only
// the mode is populated.
func (c *Catalog) Context(mode Mode) (Context, error) {
	out := Context{Mode: mode, AssetURL: func(string) string { return "" }}
	if !c.Enabled() {
		return out, nil
	}
	if err := c.Load(); err != nil {
		return out, err
	}

	variant := ""
	if mode != ModeSystem {
		variant = string(mode)
	}
	selector := gotheme.Selector{
		Registry:     c.registry,
		DefaultTheme: c.manifest.Name,
	}
	selection, err := selector.Select(c.manifest.Name, variant)
	if err != nil {
		return out, fmt.Errorf("themes: select %s/%s: %w", c.manifest.Name, variant, err)
	}

	out.Theme = selection.Theme
	out.Variant = selection.Variant
	out.Tokens = selection.Tokens()
	out.CSSVars = selection.CSSVariables(c.cfg.CSSVariablePrefix)
	out.AssetURL = func(key string) string {
		url, _ := selection.Asset(key)
		return url
	}
	return out, nil
}
