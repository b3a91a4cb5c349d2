package content

import (
	"context"
	"errors"
	"sort"

	"github.com/goliatone/go-folio/internal/logging"
)

// Collection returns every item of contentType for lang, newest first.
func (s *service) Collection(ctx context.Context, contentType, lang string) ([]*Item, error) {
	items, _, err := s.CollectionWithReport(ctx, contentType, lang)
	return items, err
}

// CollectionWithReport builds the collection and reports the slugs that were
// listed but left out. Individual slugs never fail the build.
func (s *service) CollectionWithReport(ctx context.Context, contentType, lang string) ([]*Item, *BuildReport, error) {
	if err := s.validateLookup(contentType, "", lang, false); err != nil {
		return nil, nil, err
	}

	names, err := s.repo.List(ctx, contentType)
	if err != nil {
		return nil, nil, err
	}

	slugs := s.uniqueSlugs(names)
	report := &BuildReport{Type: contentType, Lang: lang, Files: len(names), Slugs: len(slugs)}
	items := make([]*Item, 0, len(slugs))

	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if !ValidSlug(slug) {
			report.omit(slug, OmitInvalidSlug, nil)
			continue
		}

		item, err := s.resolve(ctx, contentType, slug, lang)
		switch {
		case err == nil:
		case errors.Is(err, ErrNotFound):
			report.omit(slug, OmitNotFound, err)
			continue
		case errors.Is(err, ErrMalformed):
			report.omit(slug, OmitMalformed, err)
			continue
		default:
			return nil, nil, err
		}

		if s.production && item.Draft {
			report.DraftsSkipped++
			continue
		}
		items = append(items, item)
	}

	SortByDate(items)
	report.Items = len(items)

	if len(report.Omitted) > 0 {
		logger := logging.WithContentContext(s.logger, contentType, "", lang)
		for _, o := range report.Omitted {
			logger.Debug("content.collection.omitted", "slug", o.Slug, "reason", string(o.Reason))
		}
	}
	return items, report, nil
}

// SortByDate orders items newest first. Dates compare as strings and ties keep
// their input order.
func SortByDate(items []*Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
}

func (s *service) uniqueSlugs(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	slugs := make([]string, 0, len(names))
	for _, name := range names {
		slug, _, ok := SplitName(name, s.languages)
		if !ok {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		slugs = append(slugs, slug)
	}
	return slugs
}
