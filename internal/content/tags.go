package content

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases tag, collapses every run of other characters into one
// hyphen and trims hyphens from both ends. Slugify(Slugify(x)) == Slugify(x).
func Slugify(tag string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(tag), "-")
	return strings.Trim(slug, "-")
}

// CollectTags returns the distinct tag texts of items sorted alphabetically.
// Tags that differ only in case or punctuation stay separate.
func CollectTags(items []*Item) []string {
	seen := map[string]struct{}{}
	var tags []string
	for _, item := range items {
		for _, tag := range item.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	collate.New(language.English).SortStrings(tags)
	return tags
}

func (s *service) AllTags(ctx context.Context, contentType, lang string) ([]string, error) {
	items, err := s.Collection(ctx, contentType, lang)
	if err != nil {
		return nil, err
	}
	return CollectTags(items), nil
}

// TagIndex groups the tags of lang by slug. The first name in sorted order is
// used for display and Count is the number of items with any tag of that slug.
func (s *service) TagIndex(ctx context.Context, contentType, lang string) ([]Tag, error) {
	items, err := s.Collection(ctx, contentType, lang)
	if err != nil {
		return nil, err
	}

	var index []Tag
	position := map[string]int{}
	for _, name := range CollectTags(items) {
		slug := Slugify(name)
		if slug == "" {
			continue
		}
		if _, ok := position[slug]; ok {
			continue
		}
		position[slug] = len(index)
		index = append(index, Tag{Name: name, Slug: slug})
	}

	for _, item := range items {
		counted := map[string]bool{}
		for _, tag := range item.Tags {
			slug := Slugify(tag)
			idx, ok := position[slug]
			if !ok || counted[slug] {
				continue
			}
			counted[slug] = true
			index[idx].Count++
		}
	}
	return index, nil
}

// ResolveTagSlug maps a tag slug back to tag text. It always reads the default
// locale so a tag page keeps one identity across languages.
func (s *service) ResolveTagSlug(ctx context.Context, contentType, tagSlug string) (string, bool, error) {
	tags, err := s.AllTags(ctx, contentType, s.languages.Default())
	if err != nil {
		return "", false, err
	}
	for _, tag := range tags {
		if Slugify(tag) == tagSlug {
			return tag, true, nil
		}
	}
	return "", false, nil
}

// PostsByTagSlug lists the lang items carrying the exact text tagSlug resolves
// to. Items tagged with a different spelling of the same slug are not matched.
func (s *service) PostsByTagSlug(ctx context.Context, contentType, tagSlug, lang string) ([]*Item, error) {
	if err := s.validateLookup(contentType, "", lang, false); err != nil {
		return nil, err
	}
	name, ok, err := s.ResolveTagSlug(ctx, contentType, tagSlug)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Resource: "tag", Key: tagSlug}
	}

	items, err := s.Collection(ctx, contentType, lang)
	if err != nil {
		return nil, err
	}
	matched := make([]*Item, 0, len(items))
	for _, item := range items {
		if item.HasTag(name) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
