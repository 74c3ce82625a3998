package article

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// List scans folder for visible markdown files and returns the published
// articles in display order: dated articles by date descending, dateless
// articles after all dated ones in folder-scan order. A folder that cannot
// be read is logged and yields an empty list; malformed front matter in any
// file propagates as an error.
func (s *Service) List(ctx context.Context, folder, routeBase string, defaultAuthors []string) ([]*interfaces.Article, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	names, err := s.scan(folder)
	if err != nil {
		s.logger.Error("scan articles folder failed", "folder", folder, "error", err)
		return nil, nil
	}

	articles := make([]*interfaces.Article, 0, len(names))
	for _, name := range names {
		slug := strings.TrimSuffix(name, markdownExt)
		content := s.readFile(filepath.Join(folder, name))

		art, err := s.Build(folder, slug, content, routeBase, defaultAuthors)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(art.HTML) == "" {
			continue
		}
		if art.Metadata.IsDraft() {
			continue
		}
		articles = append(articles, art)
	}

	sortArticles(articles)
	return articles, nil
}

// Get reads one named file directly, without a folder scan. It always
// returns an Article when parsing succeeds; callers detect "not found" by an
// empty HTML field.
func (s *Service) Get(ctx context.Context, slug, folder, routeBase string, defaultAuthors []string) (*interfaces.Article, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content := s.readFile(filepath.Join(folder, slug+markdownExt))
	return s.Build(folder, slug, content, routeBase, defaultAuthors)
}

// IsEmpty reports whether folder holds no visible markdown file. It
// short-circuits on the first match; an unreadable folder counts as empty.
func (s *Service) IsEmpty(folder string) bool {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return true
	}
	for _, entry := range entries {
		if isVisibleMarkdown(entry) {
			return false
		}
	}
	return true
}

// ListSlugs returns slugs only, for the CLI listing. With drafts true it
// returns hidden files with the marker stripped; otherwise visible ones.
func (s *Service) ListSlugs(folder string, drafts bool) []string {
	entries, err := os.ReadDir(folder)
	if err != nil {
		s.logger.Error("scan articles folder failed", "folder", folder, "error", err)
		return nil
	}

	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), markdownExt) {
			continue
		}
		hidden := strings.HasPrefix(entry.Name(), hiddenPrefix)
		if hidden != drafts {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), markdownExt)
		if drafts {
			slug = strings.TrimPrefix(slug, hiddenPrefix)
		}
		slugs = append(slugs, slug)
	}
	return slugs
}

// scan returns the visible markdown file names inside folder, in directory
// order.
func (s *Service) scan(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if isVisibleMarkdown(entry) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// readFile returns the file content, or an empty string when the file went
// missing between scan and read so the article is skipped downstream.
func (s *Service) readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("read article file failed", "path", path, "error", err)
		}
		return ""
	}
	return string(data)
}

func isVisibleMarkdown(entry fs.DirEntry) bool {
	name := entry.Name()
	return !entry.IsDir() &&
		strings.HasSuffix(name, markdownExt) &&
		!strings.HasPrefix(name, hiddenPrefix)
}

// sortArticles orders dated articles by date descending and places dateless
// articles after every dated one, preserving their scan order.
func sortArticles(articles []*interfaces.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		di, dj := articles[i].Metadata.Date, articles[j].Metadata.Date
		switch {
		case !di.IsZero() && !dj.IsZero():
			return di.After(dj)
		case di.IsZero() && dj.IsZero():
			return false
		default:
			return dj.IsZero()
		}
	})
}
