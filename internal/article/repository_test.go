package article

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func writePost(t *testing.T, folder, name, content string) {
	t.Helper()
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(folder, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write post: %v", err)
	}
}

func TestListSortsByDateDescending(t *testing.T) {
	svc := newTestService(t)
	folder := t.TempDir()

	writePost(t, folder, "older.md", "---\ndate: 2024-01-01\n---\nOlder.")
	writePost(t, folder, "newer.md", "---\ndate: 2024-03-01\n---\nNewer.")
	// A dateless file picks up its mtime, which is newer than both.
	writePost(t, folder, "undated.md", "Undated.")

	articles, err := svc.List(context.Background(), folder, "posts", nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := names(articles)
	want := []string{"undated", "newer", "older"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestListSkipsHiddenFiles(t *testing.T) {
	svc := newTestService(t)
	folder := t.TempDir()

	writePost(t, folder, "visible.md", "Visible.")
	writePost(t, folder, "_hidden.md", "Hidden.")

	articles, err := svc.List(context.Background(), folder, "posts", nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	if articles[0].Name != "visible" {
		t.Fatalf("unexpected article: %q", articles[0].Name)
	}
}

func TestListSkipsEmptyBodies(t *testing.T) {
	svc := newTestService(t)
	folder := t.TempDir()

	writePost(t, folder, "real.md", "Content.")
	writePost(t, folder, "empty.md", "---\ntitle: Only Meta\n---\n")
	writePost(t, folder, "heading-only.md", "# Title With No Body")

	articles, err := svc.List(context.Background(), folder, "posts", nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected only the non-empty article, got %d", len(articles))
	}
	if articles[0].Name != "real" {
		t.Fatalf("unexpected article: %q", articles[0].Name)
	}
}

func TestListSkipsUnpublished(t *testing.T) {
	svc := newTestService(t)
	folder := t.TempDir()

	writePost(t, folder, "live.md", "Live.")
	writePost(t, folder, "held.md", "---\npublished: false\n---\nHeld back.")

	articles, err := svc.List(context.Background(), folder, "posts", nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(articles) != 1 || articles[0].Name != "live" {
		t.Fatalf("expected only the published article, got %v", names(articles))
	}
}

func TestListMissingFolder(t *testing.T) {
	svc := newTestService(t)

	articles, err := svc.List(context.Background(), filepath.Join(t.TempDir(), "nope"), "posts", nil)
	if err != nil {
		t.Fatalf("expected nil error for missing folder, got %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected empty list, got %d", len(articles))
	}
}

func TestListMalformedFrontMatterFails(t *testing.T) {
	svc := newTestService(t)
	folder := t.TempDir()

	writePost(t, folder, "bad.md", "---\ntitle: [unclosed\n---\nBody.")

	if _, err := svc.List(context.Background(), folder, "posts", nil); err == nil {
		t.Fatal("expected error for malformed front matter")
	}
}

func TestGetMissingFileYieldsEmptyArticle(t *testing.T) {
	svc := newTestService(t)
	folder := t.TempDir()

	art, err := svc.Get(context.Background(), "missing", folder, "posts", nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if art.Content != "" || art.HTML != "" {
		t.Fatalf("expected empty article, got content %q", art.Content)
	}
}

func TestGetReadsFile(t *testing.T) {
	svc := newTestService(t)
	folder := t.TempDir()

	writePost(t, folder, "hello.md", "# Hello\n\nWorld.")

	art, err := svc.Get(context.Background(), "hello", folder, "posts", nil)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if art.Title != "Hello" {
		t.Fatalf("unexpected title: %q", art.Title)
	}
	if art.URL != "/posts/hello" {
		t.Fatalf("unexpected URL: %q", art.URL)
	}
}

func TestIsEmpty(t *testing.T) {
	svc := newTestService(t)
	folder := t.TempDir()

	if !svc.IsEmpty(folder) {
		t.Fatal("expected empty folder")
	}
	writePost(t, folder, "one.md", "Content.")
	if svc.IsEmpty(folder) {
		t.Fatal("expected non-empty folder")
	}
}

func TestListSlugs(t *testing.T) {
	svc := newTestService(t)
	folder := t.TempDir()

	writePost(t, folder, "one.md", "One.")
	writePost(t, folder, "_two.md", "Two.")

	visible := svc.ListSlugs(folder, false)
	if len(visible) != 1 || visible[0] != "one" {
		t.Fatalf("unexpected visible slugs: %v", visible)
	}

	hidden := svc.ListSlugs(folder, true)
	if len(hidden) != 1 || hidden[0] != "two" {
		t.Fatalf("unexpected hidden slugs: %v", hidden)
	}
}

func TestSortArticlesPlacesDatelessLast(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}
	articles := []*interfaces.Article{
		{Name: "older", Metadata: interfaces.Metadata{Date: day(1)}},
		{Name: "undated-a"},
		{Name: "newer", Metadata: interfaces.Metadata{Date: day(9)}},
		{Name: "undated-b"},
	}

	sortArticles(articles)

	want := []string{"newer", "older", "undated-a", "undated-b"}
	got := names(articles)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v, want %v", got, want)
		}
	}
}

func names(articles []*interfaces.Article) []string {
	out := make([]string, 0, len(articles))
	for _, art := range articles {
		out = append(out, art.Name)
	}
	return out
}
