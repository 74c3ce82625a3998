package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := NewGoldmarkRenderer(RendererConfig{Extensions: []string{"gfm"}})

	out, err := r.Render([]byte("## Section\n\nSome **bold** text."))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<h2") {
		t.Fatalf("expected <h2> in output: %s", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("expected bold text in output: %s", html)
	}
}

func TestRenderTable(t *testing.T) {
	r := NewGoldmarkRenderer(RendererConfig{Extensions: []string{"gfm"}})

	out, err := r.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |"))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Fatalf("expected table in output: %s", out)
	}
}

func TestRenderDisableLinks(t *testing.T) {
	r := NewGoldmarkRenderer(RendererConfig{})

	out, err := r.RenderWithOptions(
		[]byte("See [the docs](https://example.com) for more."),
		interfaces.RenderOptions{DisableLinks: true},
	)
	if err != nil {
		t.Fatalf("RenderWithOptions returned error: %v", err)
	}

	html := string(out)
	if strings.Contains(html, "<a ") {
		t.Fatalf("expected no anchors with links disabled: %s", html)
	}
	if !strings.Contains(html, "the docs") {
		t.Fatalf("expected link text to survive: %s", html)
	}
}

func TestRenderLinksEnabledByDefault(t *testing.T) {
	r := NewGoldmarkRenderer(RendererConfig{})

	out, err := r.Render([]byte("See [the docs](https://example.com)."))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(string(out), `<a href="https://example.com"`) {
		t.Fatalf("expected anchor in output: %s", out)
	}
}

func TestRenderSanitizeStripsScript(t *testing.T) {
	r := NewGoldmarkRenderer(RendererConfig{Sanitize: true})

	out, err := r.Render([]byte("Text.\n\n<script>alert(1)</script>"))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("expected script tag to be removed: %s", out)
	}
}

func TestRenderCodeHighlighting(t *testing.T) {
	r := NewGoldmarkRenderer(RendererConfig{HighlightStyle: "github"})

	out, err := r.Render([]byte("```go\nfmt.Println(\"hi\")\n```"))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(string(out), "<pre") {
		t.Fatalf("expected highlighted code block: %s", out)
	}
}
