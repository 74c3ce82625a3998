package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-blog/internal/article"
	"github.com/goliatone/go-blog/internal/feed"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/search"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config wires the server to its collaborators.
type Config struct {
	Runtime   runtimeconfig.Config
	Articles  *article.Service
	Search    *search.Index
	Generator *generator.Generator
	Logger    interfaces.Logger
}

// Server exposes the blog over HTTP: the paginated searchable index,
// article and page routes with static asset fallback, RSS, sitemap, and
// the freshness cache in front of everything file-backed.
type Server struct {
	cfg       runtimeconfig.Config
	articles  *article.Service
	search    *search.Index
	generator *generator.Generator
	logger    interfaces.Logger
	echo      *echo.Echo
	now       func() time.Time

	postsBase  string
	draftsBase string
}

// New builds the echo application and registers every route.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "cannot parse templates")
	}

	s := &Server{
		cfg:        cfg.Runtime,
		articles:   cfg.Articles,
		search:     cfg.Search,
		generator:  cfg.Generator,
		logger:     logger,
		now:        time.Now,
		postsBase:  filepath.Base(cfg.Runtime.Folders.Posts),
		draftsBase: filepath.Base(cfg.Runtime.Folders.Drafts),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = s.handleError
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(s.requestLogger)

	// Registered after Gzip so cached bodies stay uncompressed and replays
	// still pass through the encoder.
	if s.cfg.Cache.Enabled {
		cache := newFreshnessCache(s.resolveModTime, logger)
		e.Use(cache.middleware)
	}

	s.echo = e
	s.routes()
	return s, nil
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("server listening", "address", s.cfg.Server.Address)
	return s.echo.Start(s.cfg.Server.Address)
}

// Shutdown drains in-flight requests and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/", s.handleIndex)
	e.GET("/rss.xml", s.handleRSS)
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/robots.txt", s.handleRobots)
	e.GET("/favicon.ico", s.handleFavicon)
	e.GET("/favicon", s.handleFavicon)
	e.GET("/init", s.handleInit)
	e.StaticFS("/static", echo.MustSubFS(assetFS, "assets"))

	e.GET("/"+s.postsBase+"/*", s.contentHandler(s.cfg.Folders.Posts, s.postsBase))
	e.GET("/"+s.draftsBase+"/*", s.contentHandler(s.cfg.Folders.Drafts, s.draftsBase))
	e.GET("/:slug", s.handlePage)
}

// viewData feeds every template; handlers fill the fields they use.
type viewData struct {
	Site       runtimeconfig.SiteConfig
	Title      string
	Pages      []*interfaces.Article
	Articles   []*interfaces.Article
	Article    *interfaces.Article
	Query      string
	Page       int
	TotalPages int
	Status     int
	Message    string
}

func (s *Server) handleIndex(c echo.Context) error {
	ctx := c.Request().Context()

	articles, err := s.articles.List(ctx, s.cfg.Folders.Posts, s.postsBase, s.cfg.Site.DefaultAuthors)
	if err != nil {
		return err
	}

	query := c.QueryParam("search")
	filtered, err := s.search.Filter(articles, query)
	if err != nil {
		return err
	}

	page, total, window := paginate(filtered, pageParam(c), s.cfg.Server.ItemsPerPage)

	data := viewData{
		Site:       s.cfg.Site,
		Title:      s.cfg.Site.Title,
		Pages:      s.navPages(ctx),
		Articles:   window,
		Query:      query,
		Page:       page,
		TotalPages: total,
	}

	// htmx swaps only the article list on live search.
	if c.Request().Header.Get("HX-Request") == "true" {
		return c.Render(http.StatusOK, "article_list", data)
	}
	return c.Render(http.StatusOK, "index", data)
}

// contentHandler serves a content folder: bare slugs render as articles,
// anything with an extension or a nested path is a static asset living
// next to its post.
func (s *Server) contentHandler(folder, routeBase string) echo.HandlerFunc {
	return func(c echo.Context) error {
		rest := c.Param("*")
		if rest == "" {
			return c.Redirect(http.StatusFound, "/")
		}
		if strings.Contains(rest, "..") {
			return echo.ErrNotFound
		}
		if strings.Contains(rest, "/") || filepath.Ext(rest) != "" {
			return c.File(filepath.Join(folder, rest))
		}

		art, err := s.articles.Get(c.Request().Context(), rest, folder, routeBase, s.cfg.Site.DefaultAuthors)
		if err != nil {
			return err
		}
		if strings.TrimSpace(art.HTML) == "" {
			return echo.ErrNotFound
		}

		data := viewData{
			Site:    s.cfg.Site,
			Title:   art.Title + " | " + s.cfg.Site.Title,
			Pages:   s.navPages(c.Request().Context()),
			Article: art,
		}
		return c.Render(http.StatusOK, "article", data)
	}
}

func (s *Server) handlePage(c echo.Context) error {
	slug := c.Param("slug")
	if filepath.Ext(slug) != "" {
		return c.File(filepath.Join(s.cfg.Folders.Pages, slug))
	}

	art, err := s.articles.Get(c.Request().Context(), slug, s.cfg.Folders.Pages, "/", s.cfg.Site.DefaultAuthors)
	if err != nil {
		return err
	}
	if art.Metadata.Redirect != "" {
		return c.Redirect(http.StatusFound, art.Metadata.Redirect)
	}
	if strings.TrimSpace(art.HTML) == "" {
		return echo.ErrNotFound
	}

	data := viewData{
		Site:    s.cfg.Site,
		Title:   art.Title + " | " + s.cfg.Site.Title,
		Pages:   s.navPages(c.Request().Context()),
		Article: art,
	}
	return c.Render(http.StatusOK, "page", data)
}

func (s *Server) handleRSS(c echo.Context) error {
	articles, err := s.articles.List(c.Request().Context(), s.cfg.Folders.Posts, s.postsBase, s.cfg.Site.DefaultAuthors)
	if err != nil {
		return err
	}
	body, err := feed.RSS(s.siteInfo(c), articles, s.now())
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(body))
}

func (s *Server) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	articles, err := s.articles.List(ctx, s.cfg.Folders.Posts, s.postsBase, s.cfg.Site.DefaultAuthors)
	if err != nil {
		return err
	}

	// Custom pages join the sitemap too, except pure redirects, which point
	// off-site anyway.
	pages, err := s.articles.List(ctx, s.cfg.Folders.Pages, "/", s.cfg.Site.DefaultAuthors)
	if err != nil {
		return err
	}
	for _, page := range pages {
		if page.Metadata.Redirect == "" {
			articles = append(articles, page)
		}
	}

	body, err := feed.Sitemap(s.siteInfo(c), articles, s.now())
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", []byte(body))
}

func (s *Server) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /" + s.draftsBase + "/\n")
	b.WriteString("Sitemap: " + s.baseURL(c) + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (s *Server) handleFavicon(c echo.Context) error {
	favicon := s.cfg.Site.Favicon
	switch {
	case favicon == "":
		return echo.ErrNotFound
	case strings.HasPrefix(favicon, "http://"), strings.HasPrefix(favicon, "https://"):
		return c.Redirect(http.StatusFound, favicon)
	default:
		return c.File(favicon)
	}
}

// handleInit seeds a welcome post into an empty posts folder so a fresh
// install has something to render.
func (s *Server) handleInit(c echo.Context) error {
	for _, folder := range []string{s.cfg.Folders.Posts, s.cfg.Folders.Drafts, s.cfg.Folders.Pages} {
		if err := os.MkdirAll(folder, 0o755); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "cannot create content folder")
		}
	}

	if !s.articles.IsEmpty(s.cfg.Folders.Posts) {
		return c.Redirect(http.StatusFound, "/")
	}

	_, err := s.generator.StoreArticle(s.cfg.Folders.Posts, "hello-world", generator.Params{
		Title:       "Hello World",
		Description: "Your first post",
		Authors:     s.cfg.Site.DefaultAuthors,
		Tags:        []string{"meta"},
		Content:     "# Hello World\n\nWelcome to your new blog. Edit or remove this post, then write your own.\n",
	})
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// navPages lists custom pages for the navbar, ordered by their `order`
// metadata with unordered pages last. Failures degrade to an empty navbar.
func (s *Server) navPages(ctx context.Context) []*interfaces.Article {
	pages, err := s.articles.List(ctx, s.cfg.Folders.Pages, "/", s.cfg.Site.DefaultAuthors)
	if err != nil {
		s.logger.Warn("cannot list pages", "error", err)
		return nil
	}
	sort.SliceStable(pages, func(i, j int) bool {
		oi, oj := pages[i].Metadata.Order, pages[j].Metadata.Order
		switch {
		case oi != nil && oj != nil:
			return *oi < *oj
		case oi == nil && oj == nil:
			return false
		default:
			return oj == nil
		}
	})
	return pages
}

func (s *Server) siteInfo(c echo.Context) feed.SiteInfo {
	return feed.SiteInfo{
		Title:       s.cfg.Site.Title,
		Description: s.cfg.Site.Description,
		BaseURL:     s.baseURL(c),
		Language:    s.cfg.Site.Locale,
	}
}

func (s *Server) baseURL(c echo.Context) string {
	if s.cfg.Site.BaseURL != "" {
		return s.cfg.Site.BaseURL
	}
	return c.Scheme() + "://" + c.Request().Host
}

// resolveModTime maps request paths to the newest modification time of
// their backing files. Pages feed the navbar on every route, so their
// folder mtime always participates.
func (s *Server) resolveModTime(path string) (time.Time, bool) {
	pagesMod := folderModTime(s.cfg.Folders.Pages)

	switch {
	case path == "/", path == "/rss.xml", path == "/sitemap.xml":
		return laterTime(folderModTime(s.cfg.Folders.Posts), pagesMod), true

	case path == "/favicon.ico", path == "/favicon":
		favicon := s.cfg.Site.Favicon
		if favicon == "" || strings.HasPrefix(favicon, "http://") || strings.HasPrefix(favicon, "https://") {
			return time.Time{}, false
		}
		info, err := os.Stat(favicon)
		if err != nil {
			return time.Time{}, false
		}
		return info.ModTime(), true

	case strings.HasPrefix(path, "/"+s.draftsBase+"/"):
		rest := strings.TrimPrefix(path, "/"+s.draftsBase+"/")
		return s.contentModTime(s.cfg.Folders.Drafts, rest, pagesMod)

	case strings.HasPrefix(path, "/"+s.postsBase+"/"):
		rest := strings.TrimPrefix(path, "/"+s.postsBase+"/")
		return s.contentModTime(s.cfg.Folders.Posts, rest, pagesMod)

	default:
		slug := strings.TrimPrefix(path, "/")
		if slug == "" || strings.Contains(slug, "/") {
			return time.Time{}, false
		}
		return s.contentModTime(s.cfg.Folders.Pages, slug, pagesMod)
	}
}

// contentModTime stats the file backing a content route: bare slugs map to
// folder/<slug>.md, anything with an extension or a nested path is the
// static asset itself. Asset responses carry no navbar, so the pages mtime
// only folds into article pages.
func (s *Server) contentModTime(folder, rest string, pagesMod time.Time) (time.Time, bool) {
	if rest == "" || strings.Contains(rest, "..") {
		return time.Time{}, false
	}

	if filepath.Ext(rest) != "" || strings.Contains(rest, "/") {
		info, err := os.Stat(filepath.Join(folder, rest))
		if err != nil {
			return time.Time{}, false
		}
		return info.ModTime(), true
	}

	info, err := os.Stat(filepath.Join(folder, rest+".md"))
	if err != nil {
		return time.Time{}, false
	}
	return laterTime(info.ModTime(), pagesMod), true
}

// handleError maps categorized errors to status codes and renders the
// error template for HTML clients.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Something went wrong."

	var httpErr *echo.HTTPError
	switch {
	case goerrors.IsCategory(err, goerrors.CategoryNotFound):
		status, message = http.StatusNotFound, "Page not found."
	case goerrors.IsCategory(err, goerrors.CategoryBadInput),
		goerrors.IsCategory(err, goerrors.CategoryValidation):
		status, message = http.StatusBadRequest, "Bad request."
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if status == http.StatusNotFound {
			message = "Page not found."
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request().URL.Path, "error", err)
	}

	data := viewData{
		Site:    s.cfg.Site,
		Title:   strconv.Itoa(status) + " | " + s.cfg.Site.Title,
		Status:  status,
		Message: message,
	}
	if renderErr := c.Render(status, "error", data); renderErr != nil {
		s.logger.Error("cannot render error page", "error", renderErr)
		_ = c.String(status, message)
	}
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := s.now()
		err := next(c)
		s.logger.Debug("request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
		)
		return err
	}
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// paginate clamps page into range and returns the visible window.
func paginate(articles []*interfaces.Article, page, perPage int) (int, int, []*interfaces.Article) {
	if perPage < 1 {
		perPage = 1
	}
	total := (len(articles) + perPage - 1) / perPage
	if total < 1 {
		total = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(articles) {
		start = len(articles)
	}
	if end > len(articles) {
		end = len(articles)
	}
	return page, total, articles[start:end]
}
