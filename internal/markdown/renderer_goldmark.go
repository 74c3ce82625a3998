package markdown

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// RendererConfig controls goldmark engine construction.
type RendererConfig struct {
	Extensions []string
	// HighlightStyle names the chroma style used for fenced code blocks.
	// Highlighting grammars are wired into the engine once, at construction.
	HighlightStyle string
	HardWraps      bool
	// Sanitize scrubs every render through the bluemonday policy. When
	// false, raw HTML passes through and sanitization is opt-in per call.
	Sanitize bool
}

// GoldmarkRenderer implements interfaces.Renderer with the goldmark engine.
// Both engine variants (regular and link-stripped) are assembled up front so
// the render path does no construction work.
type GoldmarkRenderer struct {
	engine   goldmark.Markdown
	linkless goldmark.Markdown
	policy   *bluemonday.Policy
	sanitize bool
}

var _ interfaces.Renderer = (*GoldmarkRenderer)(nil)

// NewGoldmarkRenderer constructs a renderer with the supplied configuration.
// An empty highlight style falls back to "github".
func NewGoldmarkRenderer(cfg RendererConfig) *GoldmarkRenderer {
	return &GoldmarkRenderer{
		engine:   newEngine(cfg, false),
		linkless: newEngine(cfg, true),
		policy:   newPolicy(),
		sanitize: cfg.Sanitize,
	}
}

// Render converts markdown into HTML using the renderer defaults.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	return r.RenderWithOptions(markdown, interfaces.RenderOptions{})
}

// RenderWithOptions converts markdown into HTML honoring per-call overrides.
func (r *GoldmarkRenderer) RenderWithOptions(markdown []byte, opts interfaces.RenderOptions) ([]byte, error) {
	engine := r.engine
	if opts.DisableLinks {
		engine = r.linkless
	}

	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}

	if r.sanitize || opts.Sanitize {
		return r.policy.SanitizeBytes(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

func newEngine(cfg RendererConfig, disableLinks bool) goldmark.Markdown {
	style := strings.TrimSpace(cfg.HighlightStyle)
	if style == "" {
		style = "github"
	}

	exts := collectExtensions(cfg.Extensions)
	exts = append(exts, highlighting.NewHighlighting(
		highlighting.WithStyle(style),
		highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
	))

	rendererOptions := []renderer.Option{}
	if cfg.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !cfg.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	if disableLinks {
		rendererOptions = append(rendererOptions,
			renderer.WithNodeRenderers(util.Prioritized(linkStripRenderer{}, 100)))
	}

	options := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(exts...),
	}
	if len(rendererOptions) > 0 {
		options = append(options, goldmark.WithRendererOptions(rendererOptions...))
	}

	return goldmark.New(options...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}

// newPolicy builds the sanitizer: UGC defaults plus the iframe embeds the
// engine allows in article bodies.
func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowAttrs("src", "width", "height", "frameborder", "allow", "allowfullscreen").OnElements("iframe")
	policy.AllowElements("iframe")
	return policy
}

// linkStripRenderer overrides anchor output so previews render link text
// without emitting navigable markup.
type linkStripRenderer struct{}

var _ renderer.NodeRenderer = linkStripRenderer{}

func (r linkStripRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
}

func (linkStripRenderer) renderLink(_ util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	// Children still render, so the link text survives as plain content.
	return ast.WalkContinue, nil
}

func (linkStripRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	_, _ = w.Write(util.EscapeHTML(n.URL(source)))
	return ast.WalkContinue, nil
}
