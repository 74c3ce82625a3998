package blog

import (
	"github.com/goliatone/go-blog/internal/article"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/search"
	"github.com/goliatone/go-blog/internal/server"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ArticleService exports the article service for consumers of the blog package.
type ArticleService = article.Service

// ArticleManager exports the post lifecycle manager.
type ArticleManager = article.Manager

// SearchIndex exports the search service.
type SearchIndex = search.Index

// Generator exports the post scaffolding service.
type Generator = generator.Generator

// Server exports the HTTP server.
type Server = server.Server

// Article exports the article record.
type Article = interfaces.Article

// Metadata exports the article metadata record.
type Metadata = interfaces.Metadata

// Module is the top level blog runtime: one configuration in, every
// service wired and sharing the same renderer and loggers.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider

	articles  *article.Service
	manager   *article.Manager
	search    *search.Index
	generator *generator.Generator
}

// New wires the module from configuration. Pass a nil provider to log
// through go-logger configured from cfg.Logging.
func New(cfg Config, provider interfaces.LoggerProvider) (*Module, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if provider == nil {
		p, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		provider = p
	}

	renderer := markdown.NewGoldmarkRenderer(markdown.RendererConfig{
		Extensions:     cfg.Markdown.Extensions,
		HighlightStyle: cfg.Markdown.HighlightStyle,
		HardWraps:      cfg.Markdown.HardWraps,
		Sanitize:       cfg.Markdown.Sanitize,
	})

	articles := article.NewService(article.Config{
		Parser:   markdown.NewParser(logging.MarkdownLogger(provider)),
		Renderer: renderer,
		Logger:   logging.ArticleLogger(provider),
	})

	gen := generator.New(logging.ArticleLogger(provider))
	manager := article.NewManager(article.Folders{
		Posts:  cfg.Folders.Posts,
		Drafts: cfg.Folders.Drafts,
	}, gen, logging.ArticleLogger(provider))

	return &Module{
		cfg:       cfg,
		provider:  provider,
		articles:  articles,
		manager:   manager,
		search:    search.New(logging.SearchLogger(provider)),
		generator: gen,
	}, nil
}

// Config returns the normalized configuration the module runs with.
func (m *Module) Config() Config {
	return m.cfg
}

// Provider exposes the logger provider for embedding applications.
func (m *Module) Provider() interfaces.LoggerProvider {
	return m.provider
}

// Articles returns the article service.
func (m *Module) Articles() *ArticleService {
	return m.articles
}

// Manager returns the post lifecycle manager.
func (m *Module) Manager() *ArticleManager {
	return m.manager
}

// Search returns the search service.
func (m *Module) Search() *SearchIndex {
	return m.search
}

// Generator returns the post scaffolding service.
func (m *Module) Generator() *Generator {
	return m.generator
}

// Server builds the HTTP server over the module's services.
func (m *Module) Server() (*Server, error) {
	return server.New(server.Config{
		Runtime:   m.cfg,
		Articles:  m.articles,
		Search:    m.search,
		Generator: m.generator,
		Logger:    logging.ServerLogger(m.provider),
	})
}

// DefaultConfig re-exports the canonical configuration defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// FromEnv overlays BLOG_* environment variables onto cfg.
func FromEnv(cfg Config) Config {
	return runtimeconfig.FromEnv(cfg)
}
