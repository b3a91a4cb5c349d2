package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-folio/internal/markdown"
)

// Resolve loads slug for lang, falling back to the default locale file. Input
// is validated before the repository is touched.
func (s *service) Resolve(ctx context.Context, contentType, slug, lang string) (*Item, error) {
	if err := s.validateLookup(contentType, slug, lang, true); err != nil {
		return nil, err
	}
	return s.resolve(ctx, contentType, slug, lang)
}

func (s *service) resolve(ctx context.Context, contentType, slug, lang string) (*Item, error) {
	for _, name := range CandidatePaths(slug, lang, s.languages) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := s.repo.Read(ctx, contentType, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("content: read %s/%s: %w", contentType, name, err)
		}
		return s.buildItem(contentType, slug, lang, name, raw)
	}
	return nil, &NotFoundError{Resource: contentType, Key: slug + "@" + lang}
}

func (s *service) buildItem(contentType, slug, lang, name string, raw []byte) (*Item, error) {
	fm, body, err := markdown.ParseFrontMatter(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", ErrMalformed, contentType, name, err)
	}

	_, sourceLang, _ := SplitName(name, s.languages)
	words := markdown.WordCount(body)

	author := fm.Author
	if author == "" {
		author = s.defaultAuthor
	}

	return &Item{
		Type:               contentType,
		Slug:               slug,
		Lang:               lang,
		SourceLang:         sourceLang,
		Path:               contentType + "/" + name,
		Title:              fm.Title,
		Spoiler:            fm.Spoiler,
		Date:               fm.Date,
		Tags:               fm.Tags,
		Draft:              fm.Draft,
		Indexed:            fm.Indexed,
		Author:             author,
		WordCount:          words,
		ReadingTimeMinutes: markdown.ReadingTime(words, s.wordsPerMinute),
		Body:               string(body),
		Custom:             fm.Custom,
	}, nil
}

// Variants lists the locales that have their own file for slug, in language
// set order. Fallbacks are not counted.
func (s *service) Variants(ctx context.Context, contentType, slug string) ([]string, error) {
	if err := s.validateLookup(contentType, slug, s.languages.Default(), true); err != nil {
		return nil, err
	}

	var out []string
	for _, lang := range s.languages.Locales() {
		for _, ext := range Extensions {
			ok, err := s.repo.Exists(ctx, contentType, FileName(slug, lang, ext, s.languages))
			if err != nil {
				return nil, fmt.Errorf("content: stat %s/%s: %w", contentType, slug, err)
			}
			if ok {
				out = append(out, lang)
				break
			}
		}
	}
	return out, nil
}
