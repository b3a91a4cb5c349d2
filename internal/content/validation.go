package content

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxSlugLength bounds slugs and content type names.
const MaxSlugLength = 100

var slugPattern = regexp.MustCompile(`(?i)^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidSlug reports whether value is usable as a slug or content type name.
func ValidSlug(value string) bool {
	return validation.Validate(value, slugRules()...) == nil
}

func slugRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.RuneLength(1, MaxSlugLength),
		validation.Match(slugPattern).Error("must be lowercase letters or digits joined by single hyphens"),
	}
}

type lookup struct {
	Type string
	Slug string
	Lang string
}

// validateLookup runs before any repository call. An empty Slug is skipped so
// collection level lookups can share the rules.
func (s *service) validateLookup(contentType, slug, lang string, requireSlug bool) error {
	in := lookup{Type: contentType, Slug: slug, Lang: lang}

	fields := []*validation.FieldRules{
		validation.Field(&in.Type, slugRules()...),
		validation.Field(&in.Lang, validation.Required, validation.By(s.supportedLocale)),
	}
	if requireSlug {
		fields = append(fields, validation.Field(&in.Slug, slugRules()...))
	}

	if err := validation.ValidateStruct(&in, fields...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (s *service) supportedLocale(value any) error {
	code, _ := value.(string)
	if !s.languages.Supported(code) {
		return validation.NewError("folio.content.locale_unsupported", "is not a supported locale")
	}
	return nil
}
