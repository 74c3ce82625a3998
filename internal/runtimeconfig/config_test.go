package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig().Normalize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestNormalizeDerivesDescription(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Site.Title = "My Site"
	cfg.Site.Description = ""

	cfg = cfg.Normalize()
	if cfg.Site.Description != "The blog: My Site" {
		t.Fatalf("unexpected derived description: %q", cfg.Site.Description)
	}
}

func TestNormalizeKeepsExplicitDescription(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Site.Description = "Own words"

	if got := cfg.Normalize().Site.Description; got != "Own words" {
		t.Fatalf("explicit description changed: %q", got)
	}
}

func TestNormalizeTrimsTrailingSlashes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Folders.Posts = "data/posts/"
	cfg.Site.BaseURL = "https://x.test/"

	cfg = cfg.Normalize()
	if cfg.Folders.Posts != "data/posts" {
		t.Fatalf("posts folder not trimmed: %q", cfg.Folders.Posts)
	}
	if cfg.Site.BaseURL != "https://x.test" {
		t.Fatalf("base URL not trimmed: %q", cfg.Site.BaseURL)
	}
}

func TestValidateRequiredFolders(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"posts", func(c *Config) { c.Folders.Posts = "" }, ErrPostsFolderRequired},
		{"drafts", func(c *Config) { c.Folders.Drafts = "" }, ErrDraftsFolderRequired},
		{"pages", func(c *Config) { c.Folders.Pages = "" }, ErrPagesFolderRequired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateItemsPerPage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.ItemsPerPage = 0
	if err := cfg.Validate(); !errors.Is(err, ErrItemsPerPageInvalid) {
		t.Fatalf("expected items per page error, got %v", err)
	}
}

func TestValidateLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Fatalf("expected level error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("BLOG_SITE_TITLE", "Env Blog")
	t.Setenv("BLOG_POSTS_FOLDER", "elsewhere/posts")
	t.Setenv("BLOG_ITEMS_PER_PAGE", "9")
	t.Setenv("BLOG_CACHE_ENABLED", "false")
	t.Setenv("BLOG_DEFAULT_AUTHORS", "alice, bob")

	cfg := FromEnv(DefaultConfig())
	if cfg.Site.Title != "Env Blog" {
		t.Fatalf("title override missing: %q", cfg.Site.Title)
	}
	if cfg.Folders.Posts != "elsewhere/posts" {
		t.Fatalf("posts folder override missing: %q", cfg.Folders.Posts)
	}
	if cfg.Server.ItemsPerPage != 9 {
		t.Fatalf("items per page override missing: %d", cfg.Server.ItemsPerPage)
	}
	if cfg.Cache.Enabled {
		t.Fatal("cache override missing")
	}
	if len(cfg.Site.DefaultAuthors) != 2 || cfg.Site.DefaultAuthors[1] != "bob" {
		t.Fatalf("default authors override missing: %v", cfg.Site.DefaultAuthors)
	}
}

func TestFromEnvIgnoresUnsetKeys(t *testing.T) {
	cfg := FromEnv(DefaultConfig())
	if cfg.Site.Title != DefaultConfig().Site.Title {
		t.Fatalf("unset env must not change title, got %q", cfg.Site.Title)
	}
}
