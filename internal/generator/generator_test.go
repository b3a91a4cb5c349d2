package generator

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-folio/internal/content"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func testSite() SiteMetadata {
	return SiteMetadata{
		Title:        "Folio",
		Description:  "Latest posts",
		BaseURL:      "https://example.com/",
		Author:       "Site Author",
		Descriptions: map[string]string{"es": "Últimos artículos"},
	}
}

func seedRepository() *content.MemoryRepository {
	repo := content.NewMemoryRepository()
	repo.PutString("blog", "hello.mdx", "---\ntitle: Hello & welcome\ndate: \"2024-01-01\"\nspoiler: First <post>\ntags: [Test, Node.js]\n---\n# Hello\n\nSome **bold** text.\n")
	repo.PutString("blog", "hello.es.mdx", "---\ntitle: Hola\ndate: \"2024-01-01\"\ntags: [Test]\n---\nHola mundo\n")
	repo.PutString("blog", "today.md", "---\ntitle: Today\ndate: \"2024-06-01T23:00:00Z\"\nauthor: Guest\ntags: [node-js]\n---\nToday\n")
	repo.PutString("blog", "future.md", "---\ntitle: Future\ndate: \"2024-06-02\"\ntags: [Later]\n---\nSoon\n")
	repo.PutString("blog", "wip.md", "---\ntitle: WIP\ndate: \"2024-02-01\"\ndraft: true\n---\nDraft\n")
	repo.PutString("blog", "undated.md", "---\ntitle: Undated\n---\nNo date\n")
	return repo
}

func newTestGenerator(t *testing.T, cfg Config, writer ArtifactWriter) Service {
	t.Helper()
	contents, err := content.NewService(seedRepository())
	if err != nil {
		t.Fatalf("content.NewService: %v", err)
	}
	if cfg.Site.BaseURL == "" {
		cfg.Site = testSite()
	}
	svc, err := NewService(cfg, Dependencies{
		Content: contents,
		Parser:  markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
		Writer:  writer,
	},
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() uuid.UUID { return uuid.MustParse("00000000-0000-0000-0000-000000000001") }),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestIsPublished(t *testing.T) {
	cases := []struct {
		item *content.Item
		want bool
	}{
		{&content.Item{Date: "2024-06-01"}, true},
		{&content.Item{Date: "2024-06-01T23:59:00Z"}, true},
		{&content.Item{Date: "2024-05-31"}, true},
		{&content.Item{Date: "2024-06-02"}, false},
		{&content.Item{Date: "2024-01-01", Draft: true}, false},
		{&content.Item{}, false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := IsPublished(tc.item, fixedNow); got != tc.want {
			t.Fatalf("IsPublished(%+v) = %v, want %v", tc.item, got, tc.want)
		}
	}
}

type rssDoc struct {
	Channel struct {
		Title       string `xml:"title"`
		Link        string `xml:"link"`
		Description string `xml:"description"`
		Language    string `xml:"language"`
		Items       []struct {
			Title      string   `xml:"title"`
			Link       string   `xml:"link"`
			GUID       string   `xml:"guid"`
			PubDate    string   `xml:"pubDate"`
			Encoded    string   `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
			Categories []string `xml:"category"`
			Creator    string   `xml:"http://purl.org/dc/elements/1.1/ creator"`
		} `xml:"item"`
	} `xml:"channel"`
}

func TestRSSIncludesOnlyPublishedItems(t *testing.T) {
	svc := newTestGenerator(t, Config{}, NewMemoryWriter())
	feed, err := svc.RSS(context.Background(), "en")
	if err != nil {
		t.Fatalf("RSS: %v", err)
	}

	for _, ns := range []string{nsContent, nsAtom, nsDC} {
		if !strings.Contains(feed, ns) {
			t.Fatalf("expected namespace %s in feed", ns)
		}
	}
	if !strings.Contains(feed, `<atom:link href="https://example.com/rss.xml" rel="self"`) {
		t.Fatalf("expected self link, got\n%s", feed)
	}

	var doc rssDoc
	if err := xml.Unmarshal([]byte(feed), &doc); err != nil {
		t.Fatalf("feed is not valid XML: %v\n%s", err, feed)
	}
	if len(doc.Channel.Items) != 2 {
		t.Fatalf("expected 2 published items, got %d", len(doc.Channel.Items))
	}

	today := doc.Channel.Items[0]
	if today.Title != "Today" || today.Creator != "Guest" {
		t.Fatalf("unexpected first item %+v", today)
	}

	hello := doc.Channel.Items[1]
	if hello.Title != "Hello & welcome" {
		t.Fatalf("expected unescaped title, got %q", hello.Title)
	}
	if hello.Link != "https://example.com/hello/" || hello.GUID != hello.Link {
		t.Fatalf("unexpected link/guid %q %q", hello.Link, hello.GUID)
	}
	if hello.PubDate != "Mon, 01 Jan 2024 00:00:00 +0000" {
		t.Fatalf("unexpected pubDate %q", hello.PubDate)
	}
	if !strings.Contains(hello.Encoded, "<strong>bold</strong>") {
		t.Fatalf("expected rendered HTML in content:encoded, got %q", hello.Encoded)
	}
	if len(hello.Categories) != 2 || hello.Categories[1] != "Node.js" {
		t.Fatalf("unexpected categories %v", hello.Categories)
	}
	if hello.Creator != "Site Author" {
		t.Fatalf("expected site author fallback, got %q", hello.Creator)
	}
}

func TestRSSLocalePrefixesLinks(t *testing.T) {
	svc := newTestGenerator(t, Config{}, NewMemoryWriter())
	feed, err := svc.RSS(context.Background(), "es")
	if err != nil {
		t.Fatalf("RSS: %v", err)
	}
	var doc rssDoc
	if err := xml.Unmarshal([]byte(feed), &doc); err != nil {
		t.Fatalf("invalid XML: %v", err)
	}
	if doc.Channel.Link != "https://example.com/es" || doc.Channel.Language != "es" {
		t.Fatalf("unexpected channel %+v", doc.Channel)
	}
	if doc.Channel.Description != "Últimos artículos" {
		t.Fatalf("expected localized description, got %q", doc.Channel.Description)
	}
	var hola string
	for _, item := range doc.Channel.Items {
		if item.Title == "Hola" {
			hola = item.Link
		}
	}
	if hola != "https://example.com/es/hello/" {
		t.Fatalf("expected prefixed link, got %q", hola)
	}

	if _, err := svc.RSS(context.Background(), "fr"); err == nil {
		t.Fatal("expected unsupported locale error")
	}
}

func TestCDATAEscapesTerminator(t *testing.T) {
	got := cdata("a]]>b")
	if got != "<![CDATA[a]]]]><![CDATA[>b]]>" {
		t.Fatalf("unexpected cdata %q", got)
	}
}

type urlset struct {
	URLs []struct {
		Loc        string `xml:"loc"`
		LastMod    string `xml:"lastmod"`
		ChangeFreq string `xml:"changefreq"`
		Priority   string `xml:"priority"`
	} `xml:"url"`
}

func TestSitemapCompleteness(t *testing.T) {
	svc := newTestGenerator(t, Config{}, NewMemoryWriter())
	raw, err := svc.Sitemap(context.Background())
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}
	var doc urlset
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("invalid XML: %v", err)
	}

	got := map[string]string{}
	for _, u := range doc.URLs {
		if _, dup := got[u.Loc]; dup {
			t.Fatalf("duplicate sitemap url %s", u.Loc)
		}
		got[u.Loc] = u.Priority + "/" + u.ChangeFreq
	}
	want := map[string]string{
		"https://example.com/":              "1.0/daily",
		"https://example.com/hello/":        "0.7/monthly",
		"https://example.com/today/":        "0.7/monthly",
		"https://example.com/tags/test/":    "0.3/weekly",
		"https://example.com/tags/node-js/": "0.3/weekly",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d urls, got %v", len(want), got)
	}
	for loc, meta := range want {
		if got[loc] != meta {
			t.Fatalf("url %s: expected %s, got %q", loc, meta, got[loc])
		}
	}
	for _, u := range doc.URLs {
		if u.Loc == "https://example.com/hello/" && u.LastMod != "2024-01-01" {
			t.Fatalf("unexpected lastmod %q", u.LastMod)
		}
	}
}

func TestRobots(t *testing.T) {
	got := BuildRobots(testSite(), true)
	want := "User-agent: *\nAllow: /\n\nSitemap: https://example.com/sitemap.xml\n"
	if got != want {
		t.Fatalf("unexpected robots\n%q", got)
	}
	if strings.Contains(BuildRobots(testSite(), false), "Sitemap") {
		t.Fatal("expected no sitemap line")
	}
}

func TestBuildWritesArtifacts(t *testing.T) {
	writer := NewMemoryWriter()
	svc := newTestGenerator(t, Config{
		GenerateFeeds:   true,
		GenerateSitemap: true,
		GenerateRobots:  true,
	}, writer)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []string{"ca/rss.xml", "es/rss.xml", "robots.txt", "rss.xml", "sitemap.xml"}
	paths := writer.Paths()
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	if result.BuildID.String() != "00000000-0000-0000-0000-000000000001" {
		t.Fatalf("unexpected build id %s", result.BuildID)
	}
	if result.Items != 2 || len(result.Artifacts) != 5 {
		t.Fatalf("unexpected result %+v", result)
	}
	for _, artifact := range result.Artifacts {
		if len(artifact.Checksum) != 64 {
			t.Fatalf("expected sha256 checksum, got %q", artifact.Checksum)
		}
	}
}

func TestBuildDryRunLeavesWriterUntouched(t *testing.T) {
	writer := NewMemoryWriter()
	svc := newTestGenerator(t, Config{GenerateFeeds: true}, writer)

	result, err := svc.Build(context.Background(), BuildOptions{Locales: []string{"es"}, DryRun: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(writer.Paths()) != 0 {
		t.Fatalf("expected no writes on dry run, got %v", writer.Paths())
	}
	if len(result.Artifacts) != 1 || result.Artifacts[0].Path != "es/rss.xml" || !result.DryRun {
		t.Fatalf("unexpected dry run result %+v", result)
	}
}

func TestDirWriterWritesFiles(t *testing.T) {
	dir := t.TempDir()
	svc := newTestGenerator(t, Config{
		OutputDir:      dir,
		GenerateFeeds:  true,
		GenerateRobots: true,
	}, NewDirWriter(dir))

	if _, err := svc.Build(context.Background(), BuildOptions{Locales: []string{"en", "ca"}}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, rel := range []string{"rss.xml", "ca/rss.xml", "robots.txt"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Fatalf("expected %s to exist: %v", rel, err)
		}
	}

	writer := NewDirWriter(dir)
	if err := writer.WriteFile(context.Background(), WriteFileRequest{Path: "../escape.txt", Content: []byte("x")}); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}
