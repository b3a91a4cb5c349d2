package generator

import (
	"time"

	"github.com/goliatone/go-folio/internal/content"
)

const isoDateLayout = "2006-01-02"

// IsPublished reports whether item is live at now: not a draft and dated on
// or before the UTC calendar day of now. Items without a date are never
// published.
func IsPublished(item *content.Item, now time.Time) bool {
	if item == nil || item.Draft || len(item.Date) < len(isoDateLayout) {
		return false
	}
	return item.Date[:len(isoDateLayout)] <= now.UTC().Format(isoDateLayout)
}

// FilterPublished keeps the published items in their original order.
func FilterPublished(items []*content.Item, now time.Time) []*content.Item {
	out := make([]*content.Item, 0, len(items))
	for _, item := range items {
		if IsPublished(item, now) {
			out = append(out, item)
		}
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	isoDateLayout,
}

// parseItemDate reads the frontmatter date. Date-only values are midnight UTC.
func parseItemDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), true
		}
	}
	if len(value) >= len(isoDateLayout) {
		if ts, err := time.Parse(isoDateLayout, value[:len(isoDateLayout)]); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
