package http

import (
	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/seo"
	"github.com/goliatone/go-folio/internal/themes"
)

type tagLink struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	URL   string `json:"url"`
	Count int    `json:"count,omitempty"`
}

type postSummary struct {
	Slug         string    `json:"slug"`
	Lang         string    `json:"lang"`
	SourceLang   string    `json:"source_lang"`
	Title        string    `json:"title"`
	Spoiler      string    `json:"spoiler,omitempty"`
	Date         string    `json:"date"`
	Author       string    `json:"author,omitempty"`
	URL          string    `json:"url"`
	Tags         []tagLink `json:"tags"`
	WordCount    int       `json:"word_count"`
	ReadingTime  int       `json:"reading_time_minutes"`
	ReadingLabel string    `json:"reading_time_label"`
}

type navLink struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Label string `json:"label"`
}

type listPage struct {
	Lang  string         `json:"lang"`
	Meta  seo.Meta       `json:"meta"`
	Theme themes.Context `json:"theme"`
	Posts []postSummary  `json:"posts"`
}

type postPage struct {
	Post     postSummary    `json:"post"`
	HTML     string         `json:"html"`
	Prev     *navLink       `json:"prev,omitempty"`
	Next     *navLink       `json:"next,omitempty"`
	Variants []string       `json:"variants"`
	Meta     seo.Meta       `json:"meta"`
	Theme    themes.Context `json:"theme"`
	Custom   map[string]any `json:"custom,omitempty"`
}

type tagIndexPage struct {
	Lang  string         `json:"lang"`
	Title string         `json:"title"`
	Meta  seo.Meta       `json:"meta"`
	Theme themes.Context `json:"theme"`
	Tags  []tagLink      `json:"tags"`
}

type tagPage struct {
	Lang  string         `json:"lang"`
	Title string         `json:"title"`
	Tag   tagLink        `json:"tag"`
	Meta  seo.Meta       `json:"meta"`
	Theme themes.Context `json:"theme"`
	Posts []postSummary  `json:"posts"`
}

type localeResponse struct {
	Locale    string   `json:"locale"`
	Default   string   `json:"default"`
	Supported []string `json:"supported"`
	Home      string   `json:"home"`
}

func filterIndexed(items []*content.Item) []*content.Item {
	out := make([]*content.Item, 0, len(items))
	for _, item := range items {
		if item.Indexed {
			out = append(out, item)
		}
	}
	return out
}
