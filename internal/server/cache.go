package server

import (
	"bytes"
	"io/fs"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// mtimeResolver maps a request path to the modification time of the
// content backing it. The second return reports whether the path is
// cacheable at all.
type mtimeResolver func(path string) (time.Time, bool)

type cacheEntry struct {
	modTime     time.Time
	status      int
	contentType string
	body        []byte
}

// freshnessCache memoizes rendered GET responses keyed by request URI and
// invalidates them by comparing the stored modification time against the
// backing files. Concurrent misses may render the same page twice; the
// last writer wins, which is harmless because both render the same bytes.
type freshnessCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	resolve mtimeResolver
	logger  interfaces.Logger
}

func newFreshnessCache(resolve mtimeResolver, logger interfaces.Logger) *freshnessCache {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &freshnessCache{
		entries: make(map[string]*cacheEntry),
		resolve: resolve,
		logger:  logger,
	}
}

// middleware serves stored responses while the backing content is
// unchanged and re-renders when it is not.
func (fc *freshnessCache) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method != http.MethodGet {
			return next(c)
		}

		modTime, cacheable := fc.resolve(c.Request().URL.Path)
		if !cacheable {
			return next(c)
		}

		key := c.Request().RequestURI
		if entry := fc.lookup(key, modTime); entry != nil {
			fc.logger.Debug("cache hit", "key", key)
			return c.Blob(entry.status, entry.contentType, entry.body)
		}

		recorder := &responseRecorder{ResponseWriter: c.Response().Writer}
		c.Response().Writer = recorder

		if err := next(c); err != nil {
			return err
		}

		status := c.Response().Status
		if status == http.StatusOK {
			fc.store(key, &cacheEntry{
				modTime:     modTime,
				status:      status,
				contentType: c.Response().Header().Get(echo.HeaderContentType),
				body:        recorder.body.Bytes(),
			})
		}
		return nil
	}
}

func (fc *freshnessCache) lookup(key string, modTime time.Time) *cacheEntry {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	entry, ok := fc.entries[key]
	if !ok || modTime.After(entry.modTime) {
		return nil
	}
	return entry
}

func (fc *freshnessCache) store(key string, entry *cacheEntry) {
	fc.mu.Lock()
	fc.entries[key] = entry
	fc.mu.Unlock()
}

// responseRecorder tees the response body so it can be replayed on the
// next fresh request.
type responseRecorder struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// folderModTime returns the newest modification time under folder,
// including the folder itself. A missing folder yields the zero time.
func folderModTime(folder string) time.Time {
	var newest time.Time
	filepath.WalkDir(folder, func(_ string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
		}
		return nil
	})
	return newest
}

func laterTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
