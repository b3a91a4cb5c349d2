package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/i18n"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const (
	nsContent = "http://purl.org/rss/1.0/modules/content/"
	nsAtom    = "http://www.w3.org/2005/Atom"
	nsDC      = "http://purl.org/dc/elements/1.1/"
)

// FeedInput groups what BuildRSS needs for one locale.
type FeedInput struct {
	Site      SiteMetadata
	Languages *i18n.Set
	Lang      string
	// Items should be a date descending collection. Unpublished entries are
	// dropped here.
	Items  []*content.Item
	Parser interfaces.MarkdownParser
	Now    time.Time
}

// BuildRSS renders an RSS 2.0 document with the content, atom and dc
// namespaces. Item bodies are rendered to HTML and wrapped in CDATA.
func BuildRSS(in FeedInput) (string, error) {
	items := FilterPublished(in.Items, in.Now)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf(`<rss version="2.0" xmlns:content="%s" xmlns:atom="%s" xmlns:dc="%s">`+"\n", nsContent, nsAtom, nsDC))
	b.WriteString("  <channel>\n")
	writeElement(&b, 4, "title", in.Site.Title)
	b.WriteString(fmt.Sprintf(`    <atom:link href="%s" rel="self" type="application/rss+xml"/>`+"\n",
		escapeXML(FeedURL(in.Site, in.Languages, in.Lang))))
	writeElement(&b, 4, "link", HomeURL(in.Site, in.Languages, in.Lang))
	writeElement(&b, 4, "description", in.Site.DescriptionFor(in.Lang))
	writeElement(&b, 4, "language", in.Lang)
	writeElement(&b, 4, "lastBuildDate", in.Now.UTC().Format(time.RFC1123Z))

	for _, item := range items {
		link := PostURL(in.Site, in.Languages, in.Lang, item.Slug)

		b.WriteString("    <item>\n")
		writeElement(&b, 6, "title", item.Title)
		writeElement(&b, 6, "link", link)
		b.WriteString(fmt.Sprintf(`      <guid isPermaLink="true">%s</guid>`+"\n", escapeXML(link)))
		if ts, ok := parseItemDate(item.Date); ok {
			writeElement(&b, 6, "pubDate", ts.Format(time.RFC1123Z))
		}
		if item.Spoiler != "" {
			writeElement(&b, 6, "description", item.Spoiler)
		}
		if in.Parser != nil {
			html, err := in.Parser.Parse([]byte(item.Body))
			if err != nil {
				return "", fmt.Errorf("generator: render %s: %w", item.Path, err)
			}
			b.WriteString("      <content:encoded>" + cdata(string(html)) + "</content:encoded>\n")
		}
		for _, tag := range item.Tags {
			writeElement(&b, 6, "category", tag)
		}
		author := item.Author
		if author == "" {
			author = in.Site.Author
		}
		if author != "" {
			writeElement(&b, 6, "dc:creator", author)
		}
		if email := strings.TrimSpace(in.Site.AuthorEmail); email != "" {
			writeElement(&b, 6, "author", fmt.Sprintf("%s (%s)", email, author))
		}
		b.WriteString("    </item>\n")
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return b.String(), nil
}

func writeElement(b *strings.Builder, indent int, name, value string) {
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString("<" + name + ">")
	b.WriteString(escapeXML(value))
	b.WriteString("</" + name + ">\n")
}

func cdata(value string) string {
	return "<![CDATA[" + strings.ReplaceAll(value, "]]>", "]]]]><![CDATA[>") + "]]>"
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(value string) string {
	return xmlEscaper.Replace(value)
}
