package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func testSite() SiteInfo {
	return SiteInfo{
		Title:       "Test Blog",
		Description: "A test blog",
		BaseURL:     "https://blog.example.com",
		Language:    "en",
	}
}

func testFeedArticles() []*interfaces.Article {
	return []*interfaces.Article{
		{
			Title: "First Post",
			URL:   "/posts/first-post",
			HTML:  "<p>Full content here.</p>",
			Metadata: interfaces.Metadata{
				Authors: []string{"alice", "bob"},
				Tags:    []string{"go", "blog"},
				Date:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			Title: "Second Post",
			URL:   "/posts/second-post",
			HTML:  "<p>More content.</p>",
		},
	}
}

func TestRSSDocument(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	out, err := RSS(testSite(), testFeedArticles(), now)
	if err != nil {
		t.Fatalf("RSS returned error: %v", err)
	}

	for _, want := range []string{
		"<title>Test Blog</title>",
		"<language>en</language>",
		"<title>First Post</title>",
		"<link>https://blog.example.com/posts/first-post</link>",
		"alice, bob",
		"Full content here.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("RSS output missing %q:\n%s", want, out)
		}
	}
}

func TestRSSItemDates(t *testing.T) {
	out, err := RSS(testSite(), testFeedArticles(), time.Now())
	if err != nil {
		t.Fatalf("RSS returned error: %v", err)
	}
	if !strings.Contains(out, "01 Mar 2024") {
		t.Fatalf("expected RFC1123Z publication date:\n%s", out)
	}
}

func TestSitemapDocument(t *testing.T) {
	now := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	out, err := Sitemap(testSite(), testFeedArticles(), now)
	if err != nil {
		t.Fatalf("Sitemap returned error: %v", err)
	}

	for _, want := range []string{
		"<urlset",
		"http://www.sitemaps.org/schemas/sitemap/0.9",
		"<loc>https://blog.example.com/</loc>",
		"<loc>https://blog.example.com/posts/first-post</loc>",
		"<changefreq>daily</changefreq>",
		"<changefreq>weekly</changefreq>",
		"<lastmod>2024-03-01</lastmod>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("sitemap output missing %q:\n%s", want, out)
		}
	}
}

func TestSitemapEntryCount(t *testing.T) {
	out, err := Sitemap(testSite(), testFeedArticles(), time.Now())
	if err != nil {
		t.Fatalf("Sitemap returned error: %v", err)
	}
	if got := strings.Count(out, "<url>"); got != 3 {
		t.Fatalf("expected 3 url entries (root + 2 articles), got %d", got)
	}
}

func TestAbsoluteURL(t *testing.T) {
	cases := []struct {
		base, path, want string
	}{
		{"https://x.test", "/a", "https://x.test/a"},
		{"https://x.test/", "/a", "https://x.test/a"},
		{"https://x.test", "a", "https://x.test/a"},
	}
	for _, tc := range cases {
		if got := absoluteURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("absoluteURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
