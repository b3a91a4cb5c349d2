package sitecmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/i18n"
	"github.com/goliatone/go-folio/internal/lint"
)

type fakeGenerator struct {
	opts   generator.BuildOptions
	result *generator.BuildResult
	err    error
}

func (f *fakeGenerator) Build(_ context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	f.opts = opts
	return f.result, f.err
}

func (f *fakeGenerator) RSS(context.Context, string) (string, error) { return "", nil }

func (f *fakeGenerator) Sitemap(context.Context) (string, error) { return "", nil }

func (f *fakeGenerator) Robots() string { return "" }

type fakeLinter struct {
	report *lint.Report
	err    error
	seen   string
}

func (f *fakeLinter) Lint(_ context.Context, contentType string) (*lint.Report, error) {
	f.seen = contentType
	return f.report, f.err
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
}

func TestBuildSiteHandlerPassesOptions(t *testing.T) {
	svc := &fakeGenerator{result: &generator.BuildResult{Items: 2, DryRun: true}}
	handler := NewBuildSiteHandler(svc, nil)

	var got *generator.BuildResult
	err := handler.Execute(context.Background(), BuildSiteCommand{
		Locales:        []string{" ES ", "ca"},
		DryRun:         true,
		ResultCallback: func(r *generator.BuildResult) { got = r },
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !svc.opts.DryRun {
		t.Fatal("expected dry run to be forwarded")
	}
	if strings.Join(svc.opts.Locales, ",") != "es,ca" {
		t.Fatalf("expected normalized locales, got %v", svc.opts.Locales)
	}
	if got == nil || got.Items != 2 {
		t.Fatalf("expected result callback with build result, got %+v", got)
	}
}

func TestBuildSiteHandlerRejectsBadLocale(t *testing.T) {
	svc := &fakeGenerator{}
	handler := NewBuildSiteHandler(svc, nil)

	err := handler.Execute(context.Background(), BuildSiteCommand{Locales: []string{"not a locale"}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestBuildSiteHandlerRequiresGenerator(t *testing.T) {
	handler := NewBuildSiteHandler(nil, nil)
	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if !errors.Is(err, ErrGeneratorRequired) {
		t.Fatalf("expected ErrGeneratorRequired, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestLintContentHandler(t *testing.T) {
	linter := &fakeLinter{report: &lint.Report{
		Type:   "blog",
		Files:  3,
		Issues: []lint.Issue{{File: "broken.md", Rule: lint.RuleSchema, Message: "missing title"}},
	}}
	handler := NewLintContentHandler(linter, nil)

	var report *lint.Report
	err := handler.Execute(context.Background(), LintContentCommand{
		ContentType:    "blog",
		ResultCallback: func(r *lint.Report) { report = r },
	})
	if err != nil {
		t.Fatalf("expected issues to be reported without failing, got %v", err)
	}
	if linter.seen != "blog" {
		t.Fatalf("expected linter to receive content type, got %q", linter.seen)
	}
	if report == nil || len(report.Issues) != 1 {
		t.Fatalf("expected report with one issue, got %+v", report)
	}

	err = handler.Execute(context.Background(), LintContentCommand{ContentType: "blog", FailOnIssues: true})
	if !errors.Is(err, ErrLintIssues) {
		t.Fatalf("expected ErrLintIssues, got %v", err)
	}
}

func TestLintContentHandlerValidatesType(t *testing.T) {
	handler := NewLintContentHandler(&fakeLinter{report: &lint.Report{}}, nil)
	err := handler.Execute(context.Background(), LintContentCommand{ContentType: "../etc"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestNewPostHandlerScaffoldsDefaultLocale(t *testing.T) {
	root := t.TempDir()
	handler := NewNewPostHandler(ScaffoldConfig{
		Root:      root,
		Languages: i18n.MustSet("en", "es", "ca"),
		Now:       fixedNow,
	}, nil)

	var created string
	err := handler.Execute(context.Background(), NewPostCommand{
		ContentType:    "blog",
		Title:          "Hello World",
		Tags:           []string{"Go"},
		ResultCallback: func(path string) { created = path },
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := filepath.Join(root, "blog", "hello-world.mdx")
	if created != want {
		t.Fatalf("expected %s, got %s", want, created)
	}
	raw, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read scaffold: %v", err)
	}
	text := string(raw)
	if !strings.HasPrefix(text, "---\n") {
		t.Fatalf("expected frontmatter fence, got %q", text)
	}
	for _, want := range []string{"title: Hello World", "2025-03-14", "- Go"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in scaffold:\n%s", want, text)
		}
	}
	if strings.Contains(text, "draft") {
		t.Fatalf("expected draft to be omitted when false:\n%s", text)
	}
}

func TestNewPostHandlerLocaleSuffixAndConflicts(t *testing.T) {
	root := t.TempDir()
	handler := NewNewPostHandler(ScaffoldConfig{
		Root:      root,
		Languages: i18n.MustSet("en", "es"),
		Now:       fixedNow,
	}, nil)

	msg := NewPostCommand{ContentType: "blog", Title: "Hola", Slug: "hello", Lang: "es", Draft: true}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "blog", "hello.es.mdx")); err != nil {
		t.Fatalf("expected localized scaffold: %v", err)
	}

	err := handler.Execute(context.Background(), msg)
	if !errors.Is(err, ErrPostExists) {
		t.Fatalf("expected ErrPostExists, got %v", err)
	}

	msg.Force = true
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected forced overwrite, got %v", err)
	}

	err = handler.Execute(context.Background(), NewPostCommand{ContentType: "blog", Title: "Salut", Lang: "fr"})
	if !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("expected ErrUnsupportedLocale, got %v", err)
	}
}

func TestNewPostCommandValidation(t *testing.T) {
	cases := []NewPostCommand{
		{ContentType: "blog"},
		{ContentType: "", Title: "x"},
		{ContentType: "blog", Title: "x", Date: "14/03/2025"},
		{ContentType: "blog", Title: "x", Tags: []string{""}},
	}
	for _, msg := range cases {
		if err := msg.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", msg)
		}
	}
	ok := NewPostCommand{ContentType: "blog", Title: "x", Date: "2025-03-14", Lang: "es"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
}
