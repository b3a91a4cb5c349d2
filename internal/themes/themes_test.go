package themes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	gotheme "github.com/goliatone/go-theme"
)

func TestParseMode(t *testing.T) {
	if mode, err := ParseMode(" Dark "); err != nil || mode != ModeDark {
		t.Fatalf("expected dark, got %q %v", mode, err)
	}
	if _, err := ParseMode("sepia"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestSwitcherPrecedence(t *testing.T) {
	s, err := NewSwitcher(SwitcherConfig{DefaultMode: "light"})
	if err != nil {
		t.Fatalf("NewSwitcher: %v", err)
	}

	cases := []struct {
		query, cookie string
		want          Mode
	}{
		{"dark", "light", ModeDark},
		{"", "dark", ModeDark},
		{"bogus", "system", ModeSystem},
		{"", "", ModeLight},
		{"bogus", "bogus", ModeLight},
	}
	for _, tc := range cases {
		if got := s.Resolve(tc.query, tc.cookie); got != tc.want {
			t.Fatalf("Resolve(%q, %q) = %q, want %q", tc.query, tc.cookie, got, tc.want)
		}
	}
}

func TestSwitcherFromRequest(t *testing.T) {
	s, err := NewSwitcher(SwitcherConfig{})
	if err != nil {
		t.Fatalf("NewSwitcher: %v", err)
	}
	if s.Default() != ModeSystem {
		t.Fatalf("expected system default, got %q", s.Default())
	}

	req := httptest.NewRequest(http.MethodGet, "/?theme=light", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "dark"})
	if got := s.FromRequest(req); got != ModeLight {
		t.Fatalf("expected query to win, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "dark"})
	if got := s.FromRequest(req); got != ModeDark {
		t.Fatalf("expected cookie value, got %q", got)
	}

	cookie := s.Cookie(ModeDark)
	if cookie.Name != "theme" || cookie.Value != "dark" || cookie.Path != "/" || cookie.MaxAge <= 0 {
		t.Fatalf("unexpected cookie %+v", cookie)
	}
}

func TestNewSwitcherRejectsUnknownDefault(t *testing.T) {
	if _, err := NewSwitcher(SwitcherConfig{DefaultMode: "neon"}); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

type failingLoader struct{ calls int }

func (l *failingLoader) Load(string) (*gotheme.Manifest, error) {
	l.calls++
	return nil, errors.New("boom")
}

func TestCatalogWithoutDirectory(t *testing.T) {
	loader := &failingLoader{}
	catalog := NewCatalog(CatalogConfig{}, loader)

	ctx, err := catalog.Context(ModeDark)
	if err != nil {
		t.Fatalf("Context: %v", err)
	}
	if ctx.Mode != ModeDark || ctx.Theme != "" || ctx.AssetURL("logo") != "" {
		t.Fatalf("unexpected context %+v", ctx)
	}
	if loader.calls != 0 {
		t.Fatalf("expected loader to be skipped, got %d calls", loader.calls)
	}
}

func TestCatalogPropagatesLoadErrors(t *testing.T) {
	loader := &failingLoader{}
	catalog := NewCatalog(CatalogConfig{Dir: "themes/folio"}, loader)
	if _, err := catalog.Context(ModeLight); err == nil {
		t.Fatal("expected load error")
	}
	if loader.calls != 1 {
		t.Fatalf("expected one load attempt, got %d", loader.calls)
	}
}
