package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/internal/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApp struct {
	cfg      folio.Config
	lastOpts folio.LoadOptions
	build    folio.BuildSiteCommand
	lint     folio.LintContentCommand
	post     folio.NewPostCommand
	report   *folio.LintReport
	lintErr  error
}

func (s *stubApp) Config() folio.Config { return s.cfg }

func (s *stubApp) Serve(context.Context) error { return nil }

func (s *stubApp) Build(_ context.Context, msg folio.BuildSiteCommand) error {
	s.build = msg
	if msg.ResultCallback != nil {
		msg.ResultCallback(&folio.BuildResult{Items: 2, DryRun: msg.DryRun})
	}
	return nil
}

func (s *stubApp) Lint(_ context.Context, msg folio.LintContentCommand) error {
	s.lint = msg
	if msg.ResultCallback != nil && s.report != nil {
		msg.ResultCallback(s.report)
	}
	return s.lintErr
}

func (s *stubApp) NewPost(_ context.Context, msg folio.NewPostCommand) error {
	s.post = msg
	if msg.ResultCallback != nil {
		msg.ResultCallback("data/" + msg.ContentType + "/" + msg.Slug + ".mdx")
	}
	return nil
}

func run(t *testing.T, app *stubApp, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(func(opts folio.LoadOptions) (application, error) {
		app.lastOpts = opts
		return app, nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newStub() *stubApp {
	return &stubApp{cfg: folio.DefaultConfig()}
}

func TestBuildCommandPassesFlags(t *testing.T) {
	app := newStub()
	out, err := run(t, app, "build", "--locale", "es", "--locale", "ca", "--dry-run", "--config", "site.yaml")
	require.NoError(t, err)

	assert.Equal(t, []string{"es", "ca"}, app.build.Locales)
	assert.True(t, app.build.DryRun)
	assert.Equal(t, "site.yaml", app.lastOpts.ConfigFile)
	assert.Contains(t, out, "planned 0 artifacts from 2 posts")
}

func TestLintCommandDefaultsContentType(t *testing.T) {
	app := newStub()
	app.report = &folio.LintReport{Type: "blog", Files: 3, Issues: []lint.Issue{
		{Slug: "orphan", Lang: "es", Rule: lint.RuleOmitted, Message: "not_found"},
	}}
	out, err := run(t, app, "lint")
	require.NoError(t, err)

	assert.Equal(t, "blog", app.lint.ContentType)
	assert.False(t, app.lint.FailOnIssues)
	assert.Contains(t, out, "omitted\torphan@es\tnot_found")
	assert.Contains(t, out, "blog: 3 files, 1 issues")
}

func TestLintCommandReturnsHandlerError(t *testing.T) {
	app := newStub()
	app.lintErr = errors.New("lint failed")
	_, err := run(t, app, "lint", "--type", "notes", "--fail")
	require.Error(t, err)

	assert.Equal(t, "notes", app.lint.ContentType)
	assert.True(t, app.lint.FailOnIssues)
}

func TestNewCommandBuildsMessage(t *testing.T) {
	app := newStub()
	out, err := run(t, app, "new", "Hello World", "--slug", "hello-world", "--lang", "es", "--tags", "Go,Testing", "--draft")
	require.NoError(t, err)

	assert.Equal(t, "Hello World", app.post.Title)
	assert.Equal(t, "blog", app.post.ContentType)
	assert.Equal(t, "es", app.post.Lang)
	assert.Equal(t, []string{"Go", "Testing"}, app.post.Tags)
	assert.True(t, app.post.Draft)
	assert.True(t, strings.HasPrefix(out, "created data/blog/hello-world.mdx"))
}

func TestNewCommandDefaultsLocale(t *testing.T) {
	app := newStub()
	_, err := run(t, app, "new", "Hello")
	require.NoError(t, err)
	assert.Equal(t, "en", app.post.Lang)
}

func TestNewCommandRequiresTitle(t *testing.T) {
	_, err := run(t, newStub(), "new")
	require.Error(t, err)
}
