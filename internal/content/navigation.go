package content

import "context"

// Neighbors finds slug in a date descending collection and returns the items
// around it. Unknown slugs and collection ends yield nil entries.
func Neighbors(collection []*Item, slug string) NavigationPair {
	for i, item := range collection {
		if item.Slug != slug {
			continue
		}
		var pair NavigationPair
		if i+1 < len(collection) {
			pair.Prev = collection[i+1]
		}
		if i > 0 {
			pair.Next = collection[i-1]
		}
		return pair
	}
	return NavigationPair{}
}

func (s *service) Navigation(ctx context.Context, contentType, slug, lang string) (NavigationPair, error) {
	if err := s.validateLookup(contentType, slug, lang, true); err != nil {
		return NavigationPair{}, err
	}
	items, err := s.Collection(ctx, contentType, lang)
	if err != nil {
		return NavigationPair{}, err
	}
	return Neighbors(items, slug), nil
}
