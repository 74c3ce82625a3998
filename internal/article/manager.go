package article

import (
	"context"
	"os"
	"path/filepath"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Folders names the content locations the manager moves posts between.
type Folders struct {
	Posts  string
	Drafts string
}

// Manager performs the filesystem side of the post lifecycle: scaffolding
// new posts, promoting drafts, archiving published posts, and removing
// drafts. All operations move the companion asset folder along with the
// markdown file when one exists.
type Manager struct {
	folders Folders
	gen     *generator.Generator
	logger  interfaces.Logger
}

// NewManager builds a Manager over the given content folders.
func NewManager(folders Folders, gen *generator.Generator, logger interfaces.Logger) *Manager {
	if logger == nil {
		logger = logging.NoOp()
	}
	if gen == nil {
		gen = generator.New(logger)
	}
	return &Manager{folders: folders, gen: gen, logger: logger}
}

// CreateParams extends the generator params with placement.
type CreateParams struct {
	generator.Params
	Slug  string
	Draft bool
}

// Create scaffolds a new post. Drafts land in the drafts folder,
// published posts in the posts folder.
func (m *Manager) Create(ctx context.Context, params CreateParams) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	folder := m.folders.Posts
	if params.Draft {
		folder = m.folders.Drafts
	}
	return m.gen.StoreArticle(folder, params.Slug, params.Params)
}

// Publish promotes a draft to the posts folder. It accepts drafts stored
// in the drafts folder as <slug>.md, or hidden in the posts folder as
// _<slug>.md.
func (m *Manager) Publish(ctx context.Context, slugName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dest := filepath.Join(m.folders.Posts, slugName+markdownExt)
	if fileExists(dest) {
		return goerrors.New("post already published: "+slugName, goerrors.CategoryConflict).
			WithTextCode("POST_ALREADY_PUBLISHED")
	}

	source, assets := m.locateDraft(slugName)
	if source == "" {
		return goerrors.New("draft not found: "+slugName, goerrors.CategoryNotFound).
			WithTextCode("DRAFT_NOT_FOUND")
	}

	if err := os.Rename(source, dest); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "cannot publish draft")
	}
	m.moveAssets(assets, filepath.Join(m.folders.Posts, slugName))

	m.logger.Info("draft published", "slug", slugName, "path", dest)
	return nil
}

// Archive moves a published post back into the drafts folder.
func (m *Manager) Archive(ctx context.Context, slugName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source := filepath.Join(m.folders.Posts, slugName+markdownExt)
	if !fileExists(source) {
		return goerrors.New("post not found: "+slugName, goerrors.CategoryNotFound).
			WithTextCode("POST_NOT_FOUND")
	}

	dest := filepath.Join(m.folders.Drafts, slugName+markdownExt)
	if fileExists(dest) {
		return goerrors.New("draft already exists: "+slugName, goerrors.CategoryConflict).
			WithTextCode("DRAFT_EXISTS")
	}

	if err := os.MkdirAll(m.folders.Drafts, 0o755); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "cannot create drafts folder")
	}
	if err := os.Rename(source, dest); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "cannot archive post")
	}
	m.moveAssets(filepath.Join(m.folders.Posts, slugName), filepath.Join(m.folders.Drafts, slugName))

	m.logger.Info("post archived", "slug", slugName, "path", dest)
	return nil
}

// Remove deletes a draft and its asset folder. Published posts are not
// removable; archive them first.
func (m *Manager) Remove(ctx context.Context, slugName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, assets := m.locateDraft(slugName)
	if source == "" {
		return goerrors.New("draft not found: "+slugName, goerrors.CategoryNotFound).
			WithTextCode("DRAFT_NOT_FOUND")
	}

	if err := os.Remove(source); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "cannot remove draft")
	}
	if assets != "" && dirExists(assets) {
		if err := os.RemoveAll(assets); err != nil {
			m.logger.Warn("cannot remove asset folder", "path", assets, "error", err)
		}
	}

	m.logger.Info("draft removed", "slug", slugName)
	return nil
}

// locateDraft resolves the markdown file and asset folder for a draft,
// checking the drafts folder before the hidden-prefix convention.
func (m *Manager) locateDraft(slugName string) (source, assets string) {
	inDrafts := filepath.Join(m.folders.Drafts, slugName+markdownExt)
	if fileExists(inDrafts) {
		return inDrafts, filepath.Join(m.folders.Drafts, slugName)
	}
	hidden := filepath.Join(m.folders.Posts, hiddenPrefix+slugName+markdownExt)
	if fileExists(hidden) {
		return hidden, filepath.Join(m.folders.Posts, hiddenPrefix+slugName)
	}
	return "", ""
}

func (m *Manager) moveAssets(from, to string) {
	if from == "" || !dirExists(from) {
		return
	}
	if err := os.Rename(from, to); err != nil {
		m.logger.Warn("cannot move asset folder", "from", from, "to", to, "error", err)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
