package interfaces

// Renderer converts Markdown into HTML. Implementations are expected to be
// stateless after construction so a single instance can be shared across
// requests without locking; expensive setup (syntax highlighting grammars,
// sanitizer policies) belongs in the constructor, not the render path.
type Renderer interface {
	// Render converts Markdown into HTML using the renderer's defaults.
	Render(markdown []byte) ([]byte, error)
	// RenderWithOptions converts Markdown into HTML with per-call overrides.
	RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
}

// RenderOptions customises a single render call.
type RenderOptions struct {
	// DisableLinks renders anchors and autolinks as plain text. Used for
	// article previews so excerpt text cannot inject navigable links.
	DisableLinks bool
	// Sanitize scrubs the rendered HTML through the configured policy
	// instead of passing raw HTML through.
	Sanitize bool
}
