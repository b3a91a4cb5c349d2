// Package lint checks content files for authoring mistakes the runtime
// tolerates: frontmatter that misses required fields and files that never
// make it into a collection.
package lint

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

//go:embed frontmatter.schema.json
var frontMatterSchema []byte

const schemaResource = "frontmatter.schema.json"

var ErrContentServiceRequired = errors.New("lint: content service is required")

// Rule names the check that produced an issue.
type Rule string

const (
	RuleSchema    Rule = "schema"
	RuleMalformed Rule = "malformed"
	RuleOmitted   Rule = "omitted"
)

// Issue is a single finding.
type Issue struct {
	File     string `json:"file,omitempty"`
	Slug     string `json:"slug,omitempty"`
	Lang     string `json:"lang,omitempty"`
	Rule     Rule   `json:"rule"`
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
}

// Report collects the findings for one content type.
type Report struct {
	Type   string  `json:"type"`
	Files  int     `json:"files"`
	Issues []Issue `json:"issues"`
}

// OK reports whether no issue was found.
func (r *Report) OK() bool {
	return r != nil && len(r.Issues) == 0
}

// Linter validates frontmatter against an embedded JSON schema and replays
// collection builds to surface omitted slugs.
type Linter struct {
	repo    interfaces.ContentRepository
	content content.Service
	schema  *jsonschema.Schema
	logger  interfaces.Logger
}

// Option configures a Linter.
type Option func(*Linter)

// WithLogger overrides the linter logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New compiles the schema and returns a Linter over repo.
func New(repo interfaces.ContentRepository, contents content.Service, opts ...Option) (*Linter, error) {
	if repo == nil {
		return nil, content.ErrRepositoryRequired
	}
	if contents == nil {
		return nil, ErrContentServiceRequired
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaResource, bytes.NewReader(frontMatterSchema)); err != nil {
		return nil, fmt.Errorf("lint: load schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("lint: compile schema: %w", err)
	}

	l := &Linter{repo: repo, content: contents, schema: schema, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// Lint checks every markdown file of contentType and every locale's
// collection build.
func (l *Linter) Lint(ctx context.Context, contentType string) (*Report, error) {
	names, err := l.repo.List(ctx, contentType)
	if err != nil {
		return nil, err
	}
	languages := l.content.Languages()
	report := &Report{Type: contentType}

	for _, name := range names {
		slug, lang, ok := content.SplitName(name, languages)
		if !ok {
			continue
		}
		report.Files++

		raw, err := l.repo.Read(ctx, contentType, name)
		if err != nil {
			return nil, err
		}
		fm, _, err := markdown.ParseFrontMatter(raw)
		if err != nil {
			report.Issues = append(report.Issues, Issue{
				File: name, Slug: slug, Lang: lang, Rule: RuleMalformed, Message: err.Error(),
			})
			continue
		}
		for _, issue := range l.validate(fm) {
			issue.File, issue.Slug, issue.Lang = name, slug, lang
			report.Issues = append(report.Issues, issue)
		}
	}

	for _, lang := range languages.Locales() {
		_, build, err := l.content.CollectionWithReport(ctx, contentType, lang)
		if err != nil {
			return nil, err
		}
		for _, o := range build.Omitted {
			if o.Reason == content.OmitMalformed {
				continue
			}
			report.Issues = append(report.Issues, Issue{
				Slug:    o.Slug,
				Lang:    lang,
				Rule:    RuleOmitted,
				Message: string(o.Reason),
			})
		}
	}

	logging.WithFields(l.logger, map[string]any{"content_type": contentType}).
		Info("lint.completed", "files", report.Files, "issues", len(report.Issues))
	return report, nil
}

func (l *Linter) validate(fm interfaces.FrontMatter) []Issue {
	err := l.schema.Validate(frontMatterDocument(fm))
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []Issue{{Rule: RuleSchema, Message: err.Error()}}
	}
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Rule:     RuleSchema,
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return issues
}

// frontMatterDocument builds the JSON shaped document the schema checks.
// Empty strings count as absent.
func frontMatterDocument(fm interfaces.FrontMatter) map[string]any {
	doc := map[string]any{
		"draft":   fm.Draft,
		"indexed": fm.Indexed,
	}
	for key, value := range map[string]string{
		"title":   fm.Title,
		"date":    fm.Date,
		"spoiler": fm.Spoiler,
		"author":  fm.Author,
	} {
		if value != "" {
			doc[key] = value
		}
	}
	if len(fm.Tags) > 0 {
		tags := make([]any, 0, len(fm.Tags))
		for _, tag := range fm.Tags {
			tags = append(tags, tag)
		}
		doc["tags"] = tags
	}
	return doc
}
