package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. Documents without a fenced block are returned as
// body-only with zero-value metadata (indexed still defaults to true).
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// frontMatterEnvelope keeps date as a string on purpose: ISO dates sort
// lexicographically and are rendered verbatim.
type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Date        string         `yaml:"date"`
	Spoiler     string         `yaml:"spoiler"`
	Description string         `yaml:"description"`
	Summary     string         `yaml:"summary"`
	Tags        []string       `yaml:"tags"`
	Author      string         `yaml:"author"`
	Draft       bool           `yaml:"draft"`
	Indexed     *bool          `yaml:"indexed"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+10)
	for key, value := range env.Custom {
		raw[key] = value
	}

	title := strings.TrimSpace(env.Title)
	date := strings.TrimSpace(env.Date)
	spoiler := firstNonEmpty(env.Spoiler, env.Description, env.Summary)
	indexed := true
	if env.Indexed != nil {
		indexed = *env.Indexed
		raw["indexed"] = indexed
	}

	if title != "" {
		raw["title"] = title
	}
	if date != "" {
		raw["date"] = date
	}
	if env.Spoiler != "" {
		raw["spoiler"] = env.Spoiler
	}
	if env.Description != "" {
		raw["description"] = env.Description
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	raw["draft"] = env.Draft

	return interfaces.FrontMatter{
		Title:   title,
		Date:    date,
		Spoiler: spoiler,
		Tags:    cleanTags(env.Tags),
		Author:  strings.TrimSpace(env.Author),
		Draft:   env.Draft,
		Indexed: indexed,
		Custom:  cloneMap(env.Custom),
		Raw:     raw,
	}
}

// cleanTags trims whitespace and drops empty entries but keeps order, case
// and duplicates exactly as authored.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
