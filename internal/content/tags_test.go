package content

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Node.js":          "node-js",
		"  Hello, World! ": "hello-world",
		"C++ & Go":         "c-go",
		"already-slugged":  "already-slugged",
		"---":              "",
	}
	for in, want := range cases {
		got := Slugify(in)
		if got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
		if again := Slugify(got); again != got {
			t.Fatalf("Slugify not idempotent for %q: %q then %q", in, got, again)
		}
	}
}

func tagRepository() *MemoryRepository {
	repo := NewMemoryRepository()
	repo.PutString("blog", "one.md", post("One", "2024-01-03", "Node.js", "Go"))
	repo.PutString("blog", "two.md", post("Two", "2024-01-02", "node-js", "Testing"))
	repo.PutString("blog", "three.md", post("Three", "2024-01-01", "Go"))
	repo.PutString("blog", "three.es.md", post("Tres", "2024-01-01", "Go", "Español"))
	return repo
}

func TestAllTagsDedupesAndSorts(t *testing.T) {
	svc := newTestService(t, tagRepository())
	tags, err := svc.AllTags(context.Background(), "blog", "en")
	if err != nil {
		t.Fatalf("AllTags: %v", err)
	}
	want := []string{"Go", "Node.js", "node-js", "Testing"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	seen := map[string]bool{}
	for _, tag := range tags {
		seen[tag] = true
	}
	for _, tag := range want {
		if !seen[tag] {
			t.Fatalf("missing tag %q in %v", tag, tags)
		}
	}
	if tags[0] != "Go" || tags[len(tags)-1] != "Testing" {
		t.Fatalf("expected alphabetical order, got %v", tags)
	}
}

func TestTagRoundTrip(t *testing.T) {
	svc := newTestService(t, tagRepository())
	ctx := context.Background()
	tags, err := svc.AllTags(ctx, "blog", "en")
	if err != nil {
		t.Fatalf("AllTags: %v", err)
	}
	for _, tag := range tags {
		name, ok, err := svc.ResolveTagSlug(ctx, "blog", Slugify(tag))
		if err != nil || !ok {
			t.Fatalf("ResolveTagSlug(%q): ok=%v err=%v", Slugify(tag), ok, err)
		}
		if Slugify(name) != Slugify(tag) {
			t.Fatalf("round trip for %q returned %q", tag, name)
		}
	}
}

func TestTagRoundTripPunctuationOnlyTag(t *testing.T) {
	repo := NewMemoryRepository()
	repo.PutString("blog", "shout.md", post("Shout", "2024-01-01", "!!!", "Go"))
	svc := newTestService(t, repo)
	ctx := context.Background()

	tags, err := svc.AllTags(ctx, "blog", "en")
	if err != nil {
		t.Fatalf("AllTags: %v", err)
	}
	for _, tag := range tags {
		name, ok, err := svc.ResolveTagSlug(ctx, "blog", Slugify(tag))
		if err != nil || !ok {
			t.Fatalf("ResolveTagSlug(%q) for %q: ok=%v err=%v", Slugify(tag), tag, ok, err)
		}
		if Slugify(name) != Slugify(tag) {
			t.Fatalf("round trip for %q returned %q", tag, name)
		}
	}

	items, err := svc.PostsByTagSlug(ctx, "blog", "", "en")
	if err != nil {
		t.Fatalf("PostsByTagSlug: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "shout" {
		t.Fatalf("expected the shout post, got %d items", len(items))
	}
}

func TestPostsByTagSlugMatchesExactText(t *testing.T) {
	svc := newTestService(t, tagRepository())
	ctx := context.Background()

	name, ok, err := svc.ResolveTagSlug(ctx, "blog", "node-js")
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}

	items, err := svc.PostsByTagSlug(ctx, "blog", "node-js", "en")
	if err != nil {
		t.Fatalf("PostsByTagSlug: %v", err)
	}
	if len(items) != 1 || !items[0].HasTag(name) {
		t.Fatalf("expected one item tagged %q, got %d", name, len(items))
	}

	goItems, err := svc.PostsByTagSlug(ctx, "blog", "go", "es")
	if err != nil {
		t.Fatalf("PostsByTagSlug es: %v", err)
	}
	var titles []string
	for _, item := range goItems {
		titles = append(titles, item.Title)
	}
	if !reflect.DeepEqual(titles, []string{"One", "Tres"}) {
		t.Fatalf("unexpected es go posts %v", titles)
	}
}

func TestPostsByTagSlugUnknownTag(t *testing.T) {
	svc := newTestService(t, tagRepository())
	_, err := svc.PostsByTagSlug(context.Background(), "blog", "espanol", "es")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for tag only present in es, got %v", err)
	}
}

func TestTagIndexGroupsBySlug(t *testing.T) {
	svc := newTestService(t, tagRepository())
	index, err := svc.TagIndex(context.Background(), "blog", "en")
	if err != nil {
		t.Fatalf("TagIndex: %v", err)
	}
	counts := map[string]int{}
	for _, tag := range index {
		counts[tag.Slug] = tag.Count
	}
	want := map[string]int{"go": 2, "node-js": 2, "testing": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("expected %v, got %v", want, counts)
	}
}
