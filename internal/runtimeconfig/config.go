package runtimeconfig

import (
	"errors"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrPostsFolderRequired indicates the posts folder was left empty.
var ErrPostsFolderRequired = errors.New("blog config: posts folder is required")

// ErrDraftsFolderRequired indicates the drafts folder was left empty.
var ErrDraftsFolderRequired = errors.New("blog config: drafts folder is required")

// ErrPagesFolderRequired indicates the pages folder was left empty.
var ErrPagesFolderRequired = errors.New("blog config: pages folder is required")

// ErrLoggingLevelInvalid indicates an unrecognized logging level.
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")

// ErrLoggingFormatInvalid indicates an unrecognized logging format.
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// ErrItemsPerPageInvalid indicates a non-positive index page size.
var ErrItemsPerPageInvalid = errors.New("blog config: items per page must be positive")

// Config aggregates every recognized option for the blog engine. All
// defaulting happens in DefaultConfig; call sites never fill gaps themselves.
type Config struct {
	Site     SiteConfig
	Folders  FoldersConfig
	Server   ServerConfig
	Cache    CacheConfig
	Markdown MarkdownConfig
	Logging  LoggingConfig
}

// SiteConfig carries presentation metadata rendered into every page.
type SiteConfig struct {
	Title         string
	Description   string
	IndexTitle    string
	IndexSubtitle string
	// Favicon is either a local file path or a remote URL.
	Favicon string
	Locale  string
	// BaseURL is the public origin used for feeds and the sitemap.
	BaseURL string
	// DefaultAuthors fills article metadata when a file names no author.
	DefaultAuthors []string
	// NoArticlesMessage replaces the built-in empty-state hint when set.
	NoArticlesMessage string
	HeaderScript      string
	BodyScript        string
}

// FoldersConfig locates the content folders. Folder base names double as
// route segments, e.g. posts in "data/posts" are served under "/posts".
type FoldersConfig struct {
	Posts  string
	Drafts string
	Pages  string
}

// ServerConfig captures HTTP listener options.
type ServerConfig struct {
	Address      string
	ItemsPerPage int
}

// CacheConfig toggles the freshness response cache.
type CacheConfig struct {
	Enabled bool
}

// MarkdownConfig controls the goldmark renderer construction.
type MarkdownConfig struct {
	Extensions     []string
	HighlightStyle string
	HardWraps      bool
	Sanitize       bool
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the canonical defaults. The site description derives
// from the title when left empty.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:  "Smallblog",
			Locale: "en",
		},
		Folders: FoldersConfig{
			Posts:  "data/posts",
			Drafts: "data/drafts",
			Pages:  "data/pages",
		},
		Server: ServerConfig{
			Address:      ":8080",
			ItemsPerPage: 5,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Markdown: MarkdownConfig{
			Extensions:     []string{"gfm", "footnote"},
			HighlightStyle: "github",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Normalize fills derived fields after user overrides are applied.
func (c Config) Normalize() Config {
	if strings.TrimSpace(c.Site.Description) == "" {
		c.Site.Description = "The blog: " + c.Site.Title
	}
	c.Site.BaseURL = strings.TrimRight(c.Site.BaseURL, "/")
	c.Folders.Posts = strings.TrimRight(c.Folders.Posts, "/")
	c.Folders.Drafts = strings.TrimRight(c.Folders.Drafts, "/")
	c.Folders.Pages = strings.TrimRight(c.Folders.Pages, "/")
	return c
}

// Validate checks cross-field consistency before the module boots.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Folders.Posts) == "" {
		return ErrPostsFolderRequired
	}
	if strings.TrimSpace(c.Folders.Drafts) == "" {
		return ErrDraftsFolderRequired
	}
	if strings.TrimSpace(c.Folders.Pages) == "" {
		return ErrPagesFolderRequired
	}
	if c.Server.ItemsPerPage < 1 {
		return ErrItemsPerPageInvalid
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.Site,
		validation.Field(&c.Site.Title, validation.Required),
		validation.Field(&c.Site.Locale, validation.Required),
	)
}

func (l LoggingConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}

// FromEnv overlays BLOG_* environment variables onto the supplied config.
// Callers load .env files (godotenv) before invoking this.
func FromEnv(cfg Config) Config {
	set := func(target *string, key string) {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}

	set(&cfg.Site.Title, "BLOG_SITE_TITLE")
	set(&cfg.Site.Description, "BLOG_SITE_DESCRIPTION")
	set(&cfg.Site.IndexTitle, "BLOG_INDEX_TITLE")
	set(&cfg.Site.IndexSubtitle, "BLOG_INDEX_SUBTITLE")
	set(&cfg.Site.Favicon, "BLOG_FAVICON")
	set(&cfg.Site.Locale, "BLOG_LOCALE")
	set(&cfg.Site.BaseURL, "BLOG_BASE_URL")
	set(&cfg.Folders.Posts, "BLOG_POSTS_FOLDER")
	set(&cfg.Folders.Drafts, "BLOG_DRAFTS_FOLDER")
	set(&cfg.Folders.Pages, "BLOG_PAGES_FOLDER")
	set(&cfg.Server.Address, "BLOG_ADDRESS")
	set(&cfg.Logging.Level, "BLOG_LOG_LEVEL")
	set(&cfg.Logging.Format, "BLOG_LOG_FORMAT")

	if v := os.Getenv("BLOG_DEFAULT_AUTHORS"); v != "" {
		cfg.Site.DefaultAuthors = splitList(v)
	}
	if v := os.Getenv("BLOG_ITEMS_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.ItemsPerPage = n
		}
	}
	if v := os.Getenv("BLOG_CACHE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = enabled
		}
	}

	return cfg
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
