package themes

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Mode is the colour scheme preference of a visitor.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// DefaultCookieName stores the visitor preference.
const DefaultCookieName = "theme"

// ErrUnknownMode is returned for values outside light, dark and system.
var ErrUnknownMode = errors.New("themes: unknown mode")

// ParseMode normalises a user supplied mode.
func ParseMode(value string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(value))); mode {
	case ModeLight, ModeDark, ModeSystem:
		return mode, nil
	default:
		return "", ErrUnknownMode
	}
}

// Modes lists the accepted modes.
func Modes() []Mode {
	return []Mode{ModeLight, ModeDark, ModeSystem}
}

// SwitcherConfig configures mode resolution.
type SwitcherConfig struct {
	DefaultMode  string
	CookieName   string
	CookieMaxAge time.Duration
	SecureCookie bool
}

// Switcher resolves the active mode from a query value, then a cookie, then
// the configured default.
type Switcher struct {
	defaultMode Mode
	cookieName  string
	maxAge      time.Duration
	secure      bool
}

// NewSwitcher validates cfg. An empty default means system.
func NewSwitcher(cfg SwitcherConfig) (*Switcher, error) {
	def := ModeSystem
	if strings.TrimSpace(cfg.DefaultMode) != "" {
		mode, err := ParseMode(cfg.DefaultMode)
		if err != nil {
			return nil, err
		}
		def = mode
	}
	name := strings.TrimSpace(cfg.CookieName)
	if name == "" {
		name = DefaultCookieName
	}
	maxAge := cfg.CookieMaxAge
	if maxAge <= 0 {
		maxAge = 365 * 24 * time.Hour
	}
	return &Switcher{defaultMode: def, cookieName: name, maxAge: maxAge, secure: cfg.SecureCookie}, nil
}

// Default returns the configured fallback mode.
func (s *Switcher) Default() Mode {
	return s.defaultMode
}

// CookieName returns the preference cookie name.
func (s *Switcher) CookieName() string {
	return s.cookieName
}

// Resolve picks the first valid value of query and cookie, falling back to
// the default. Invalid values are ignored.
func (s *Switcher) Resolve(query, cookie string) Mode {
	for _, candidate := range []string{query, cookie} {
		if mode, err := ParseMode(candidate); err == nil {
			return mode
		}
	}
	return s.defaultMode
}

// FromRequest applies Resolve to the ?theme= query value and the cookie.
func (s *Switcher) FromRequest(r *http.Request) Mode {
	var cookie string
	if c, err := r.Cookie(s.cookieName); err == nil {
		cookie = c.Value
	}
	return s.Resolve(r.URL.Query().Get("theme"), cookie)
}

// Cookie builds the preference cookie for mode.
func (s *Switcher) Cookie(mode Mode) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName,
		Value:    string(mode),
		Path:     "/",
		MaxAge:   int(s.maxAge / time.Second),
		HttpOnly: false,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
