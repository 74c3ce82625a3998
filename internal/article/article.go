package article

import (
	"math"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	// markdownExt is the only extension the repository considers.
	markdownExt = ".md"
	// hiddenPrefix marks a file as a draft inside a published folder.
	hiddenPrefix = "_"
	// previewLength caps the derived excerpt before rendering.
	previewLength = 300
	// wordsPerMinute drives the reading time estimate.
	wordsPerMinute = 250
)

// Config carries the dependencies for the article service.
type Config struct {
	Parser   *markdown.Parser
	Renderer interfaces.Renderer
	Logger   interfaces.Logger
}

// Service builds Article records from markdown files and scans content
// folders. Articles are request-scoped: every call re-reads the backing
// files, so the service itself holds no mutable state.
type Service struct {
	parser   *markdown.Parser
	renderer interfaces.Renderer
	logger   interfaces.Logger
}

// NewService constructs the article service. A nil parser gets a default,
// a nil logger a no-op.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	parser := cfg.Parser
	if parser == nil {
		parser = markdown.NewParser(logger)
	}
	return &Service{
		parser:   parser,
		renderer: cfg.Renderer,
		logger:   logger,
	}
}

// Build normalizes one markdown file into an Article. The route base
// defaults to the containing folder; default authors fill metadata only when
// the file names none. Malformed front matter is a hard failure.
func (s *Service) Build(folder, slug, content, routeBase string, defaultAuthors []string) (*interfaces.Article, error) {
	if routeBase == "" {
		routeBase = folder
	}

	doc, err := s.parser.Parse([]byte(content), filepath.Join(folder, slug+markdownExt))
	if err != nil {
		return nil, err
	}

	meta := doc.Metadata
	if len(meta.Authors) == 0 && len(defaultAuthors) > 0 {
		meta.Authors = append([]string(nil), defaultAuthors...)
	}

	title := meta.Title
	if title == "" {
		title = doc.Title
	}
	if title == "" {
		title = labelFromSlug(slug)
	}

	html, err := s.render(doc.Body, interfaces.RenderOptions{})
	if err != nil {
		return nil, err
	}

	preview, err := s.render(previewSource(meta, doc.Body), interfaces.RenderOptions{DisableLinks: true})
	if err != nil {
		return nil, err
	}

	return &interfaces.Article{
		Name:       slug,
		Title:      title,
		Content:    content,
		Metadata:   meta,
		HTML:       html,
		Preview:    preview,
		URL:        path.Join("/", filepath.ToSlash(routeBase), slug),
		TimeToRead: estimateReadingTime(doc.Body),
	}, nil
}

func (s *Service) render(body string, opts interfaces.RenderOptions) (string, error) {
	if strings.TrimSpace(body) == "" {
		return "", nil
	}
	out, err := s.renderer.RenderWithOptions([]byte(body), opts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// previewSource picks the explicit front-matter preview when present,
// otherwise the first 300 characters of the cleaned body.
func previewSource(meta interfaces.Metadata, body string) string {
	if meta.Preview != "" {
		return meta.Preview
	}
	runes := []rune(body)
	if len(runes) <= previewLength {
		return body
	}
	return string(runes[:previewLength]) + "..."
}

// estimateReadingTime rounds words/250; zero renders as "< 1".
func estimateReadingTime(body string) interfaces.ReadingTime {
	words := len(strings.Fields(body))
	return interfaces.ReadingTime(math.Round(float64(words) / wordsPerMinute))
}

// labelFromSlug turns a slug into a human label: the hidden marker is
// stripped, underscores become spaces, the first rune is upper-cased.
func labelFromSlug(slug string) string {
	label := strings.TrimPrefix(slug, hiddenPrefix)
	label = strings.ReplaceAll(label, "_", " ")
	if label == "" {
		return label
	}
	first, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(first)) + label[size:]
}
