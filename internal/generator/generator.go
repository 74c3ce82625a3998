package generator

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Params describe the post to scaffold. Title is the only mandatory
// field; everything else gets a sensible default.
type Params struct {
	Title       string
	Description string
	Authors     []string
	Tags        []string
	Content     string
	Preview     string
	Section     string
	Date        time.Time
	WithFolder  bool
}

// Generator writes post skeletons into a posts folder.
type Generator struct {
	logger interfaces.Logger
}

// New constructs a Generator. A nil logger falls back to a no-op.
func New(logger interfaces.Logger) *Generator {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Generator{logger: logger}
}

// Slugify turns a post title into a filesystem and URL safe slug.
func Slugify(title string) (string, error) {
	normalized, err := slug.Normalize(title)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryBadInput, "cannot derive slug from title").
			WithTextCode("SLUG_INVALID")
	}
	return normalized, nil
}

// StoreArticle renders Params into front-matter markdown and writes it to
// folder/<slug>.md, optionally alongside a companion asset folder of the
// same name. It refuses to overwrite an existing post.
func (g *Generator) StoreArticle(folder string, slugName string, params Params) (string, error) {
	if strings.TrimSpace(params.Title) == "" {
		return "", goerrors.New("post title is required", goerrors.CategoryBadInput).
			WithTextCode("TITLE_REQUIRED")
	}

	if slugName == "" {
		derived, err := Slugify(params.Title)
		if err != nil {
			return "", err
		}
		slugName = derived
	}

	path := filepath.Join(folder, slugName+".md")
	if _, err := os.Stat(path); err == nil {
		return "", goerrors.New("post already exists: "+path, goerrors.CategoryConflict).
			WithTextCode("POST_EXISTS")
	}

	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}

	meta := interfaces.Metadata{
		Title:       params.Title,
		Description: params.Description,
		Authors:     params.Authors,
		Tags:        params.Tags,
		Preview:     params.Preview,
		Section:     params.Section,
		Date:        date,
	}

	body := params.Content
	if body == "" {
		body = "# " + params.Title + "\n\nWrite your post here.\n"
	}

	source, err := markdown.Encode(meta, body)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "cannot create posts folder")
	}
	if err := os.WriteFile(path, source, 0o644); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "cannot write post")
	}

	if params.WithFolder {
		assets := filepath.Join(folder, slugName)
		if err := os.MkdirAll(assets, 0o755); err != nil {
			g.logger.Warn("cannot create asset folder", "path", assets, "error", err)
		}
	}

	g.logger.Info("post created", "path", path)
	return path, nil
}
