package content

// Item is one resolved content file. Items are rebuilt on every lookup and
// never mutated afterwards.
type Item struct {
	Type string `json:"type"`
	Slug string `json:"slug"`
	// Lang is the locale that was requested.
	Lang string `json:"lang"`
	// SourceLang is the locale of the file that was read. It differs from Lang
	// when resolution fell back to the default locale.
	SourceLang string `json:"source_lang"`
	Path       string `json:"path"`

	Title   string   `json:"title"`
	Spoiler string   `json:"spoiler,omitempty"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
	Draft   bool     `json:"draft"`
	Indexed bool     `json:"indexed"`
	Author  string   `json:"author,omitempty"`

	WordCount          int `json:"word_count"`
	ReadingTimeMinutes int `json:"reading_time_minutes"`

	Body   string         `json:"-"`
	Custom map[string]any `json:"custom,omitempty"`
}

// Fallback reports whether the item was served from another locale's file.
func (i *Item) Fallback() bool {
	return i != nil && i.SourceLang != i.Lang
}

// HasTag reports whether the item carries exactly the given tag text.
func (i *Item) HasTag(name string) bool {
	if i == nil {
		return false
	}
	for _, tag := range i.Tags {
		if tag == name {
			return true
		}
	}
	return false
}

// Tag is a tag with its URL slug and the number of items carrying it.
type Tag struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// NavigationPair holds the chronological neighbours of an item in a date
// descending collection. Prev is the next older item, Next the next newer one.
type NavigationPair struct {
	Prev *Item `json:"prev,omitempty"`
	Next *Item `json:"next,omitempty"`
}

// OmissionReason classifies why a listed slug is missing from a collection.
type OmissionReason string

const (
	OmitInvalidSlug OmissionReason = "invalid_slug"
	OmitNotFound    OmissionReason = "not_found"
	OmitMalformed   OmissionReason = "malformed"
)

// Omission records a slug that was listed but left out of a collection.
type Omission struct {
	Slug   string         `json:"slug"`
	Reason OmissionReason `json:"reason"`
	Detail string         `json:"detail,omitempty"`
}

// BuildReport summarises one collection build.
type BuildReport struct {
	Type          string     `json:"type"`
	Lang          string     `json:"lang"`
	Files         int        `json:"files"`
	Slugs         int        `json:"slugs"`
	Items         int        `json:"items"`
	DraftsSkipped int        `json:"drafts_skipped"`
	Omitted       []Omission `json:"omitted,omitempty"`
}

func (r *BuildReport) omit(slug string, reason OmissionReason, err error) {
	o := Omission{Slug: slug, Reason: reason}
	if err != nil {
		o.Detail = err.Error()
	}
	r.Omitted = append(r.Omitted, o)
}
