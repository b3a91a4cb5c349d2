package sitecmd

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-folio/internal/generator"
	"github.com/goliatone/go-folio/internal/lint"
)

const (
	buildSiteMessageType   = "folio.site.build"
	lintContentMessageType = "folio.content.lint"
	newPostMessageType     = "folio.content.new"
)

var (
	localePattern      = regexp.MustCompile(`^[a-z]{2,3}(-[a-z0-9]{2,8})*$`)
	contentTypePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	datePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// BuildSiteCommand writes the feed, sitemap and robots artifacts.
type BuildSiteCommand struct {
	Locales        []string                     `json:"locales,omitempty"`
	DryRun         bool                         `json:"dry_run,omitempty"`
	ResultCallback func(*generator.BuildResult) `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures requested locales are well-formed codes.
func (m BuildSiteCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Locales, validation.Each(
			validation.Required,
			validation.By(func(value any) error {
				code, _ := value.(string)
				if !localePattern.MatchString(strings.ToLower(strings.TrimSpace(code))) {
					return validation.NewError("folio.site.build.locale_invalid", "locales must be language codes")
				}
				return nil
			}),
		)),
	)
}

// LintContentCommand checks one content type for frontmatter and collection problems.
type LintContentCommand struct {
	ContentType    string             `json:"content_type"`
	FailOnIssues   bool               `json:"fail_on_issues,omitempty"`
	ResultCallback func(*lint.Report) `json:"-"`
}

// Type implements command.Message.
func (LintContentCommand) Type() string { return lintContentMessageType }

// Validate ensures the content type names a directory.
func (m LintContentCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ContentType,
			validation.Required,
			validation.Match(contentTypePattern).Error("content type must be a lowercase directory name"),
		),
	)
}

// NewPostCommand scaffolds a markdown file with frontmatter.
type NewPostCommand struct {
	ContentType    string       `json:"content_type"`
	Title          string       `json:"title"`
	Slug           string       `json:"slug,omitempty"`
	Lang           string       `json:"lang,omitempty"`
	Date           string       `json:"date,omitempty"`
	Spoiler        string       `json:"spoiler,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	Draft          bool         `json:"draft,omitempty"`
	Force          bool         `json:"force,omitempty"`
	ResultCallback func(string) `json:"-"`
}

// Type implements command.Message.
func (NewPostCommand) Type() string { return newPostMessageType }

// Validate checks the scaffold inputs. The slug is optional and derived from the title when empty.
func (m NewPostCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ContentType,
			validation.Required,
			validation.Match(contentTypePattern).Error("content type must be a lowercase directory name"),
		),
		validation.Field(&m.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&m.Slug, validation.RuneLength(0, 100)),
		validation.Field(&m.Lang, validation.Match(localePattern).Error("lang must be a language code")),
		validation.Field(&m.Date, validation.Match(datePattern).Error("date must use YYYY-MM-DD")),
		validation.Field(&m.Tags, validation.Each(validation.Required)),
	)
}
