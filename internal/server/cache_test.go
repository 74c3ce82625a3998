package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func performRequest(t *testing.T, e *echo.Echo, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFreshnessCacheServesStoredResponse(t *testing.T) {
	modTime := time.Now()
	resolve := func(string) (time.Time, bool) { return modTime, true }

	renders := 0
	e := echo.New()
	cache := newFreshnessCache(resolve, nil)
	e.Use(cache.middleware)
	e.GET("/page", func(c echo.Context) error {
		renders++
		return c.String(http.StatusOK, "rendered")
	})

	for i := 0; i < 3; i++ {
		rec := performRequest(t, e, "/page")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status %d", i, rec.Code)
		}
		if rec.Body.String() != "rendered" {
			t.Fatalf("request %d body %q", i, rec.Body.String())
		}
	}
	if renders != 1 {
		t.Fatalf("expected 1 render, got %d", renders)
	}
}

func TestFreshnessCacheRecomputesOnNewerContent(t *testing.T) {
	modTime := time.Now()
	resolve := func(string) (time.Time, bool) { return modTime, true }

	renders := 0
	e := echo.New()
	cache := newFreshnessCache(resolve, nil)
	e.Use(cache.middleware)
	e.GET("/page", func(c echo.Context) error {
		renders++
		return c.String(http.StatusOK, "rendered")
	})

	performRequest(t, e, "/page")
	performRequest(t, e, "/page")
	if renders != 1 {
		t.Fatalf("expected cached second request, got %d renders", renders)
	}

	// Touch the backing content: next request must re-render.
	modTime = modTime.Add(time.Second)
	performRequest(t, e, "/page")
	if renders != 2 {
		t.Fatalf("expected re-render after content change, got %d renders", renders)
	}

	// And the fresh entry is cached again.
	performRequest(t, e, "/page")
	if renders != 2 {
		t.Fatalf("expected cache hit after re-render, got %d renders", renders)
	}
}

func TestFreshnessCacheSkipsUncacheablePaths(t *testing.T) {
	resolve := func(string) (time.Time, bool) { return time.Time{}, false }

	renders := 0
	e := echo.New()
	cache := newFreshnessCache(resolve, nil)
	e.Use(cache.middleware)
	e.GET("/live", func(c echo.Context) error {
		renders++
		return c.String(http.StatusOK, "fresh")
	})

	performRequest(t, e, "/live")
	performRequest(t, e, "/live")
	if renders != 2 {
		t.Fatalf("expected no caching, got %d renders", renders)
	}
}

func TestFreshnessCacheKeysIncludeQuery(t *testing.T) {
	modTime := time.Now()
	resolve := func(string) (time.Time, bool) { return modTime, true }

	var seen []string
	e := echo.New()
	cache := newFreshnessCache(resolve, nil)
	e.Use(cache.middleware)
	e.GET("/", func(c echo.Context) error {
		seen = append(seen, c.QueryParam("q"))
		return c.String(http.StatusOK, "q="+c.QueryParam("q"))
	})

	first := performRequest(t, e, "/?q=one")
	second := performRequest(t, e, "/?q=two")
	if first.Body.String() == second.Body.String() {
		t.Fatal("different queries must not share cache entries")
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 renders, got %d", len(seen))
	}
}

func TestFreshnessCacheIgnoresErrors(t *testing.T) {
	modTime := time.Now()
	resolve := func(string) (time.Time, bool) { return modTime, true }

	calls := 0
	e := echo.New()
	cache := newFreshnessCache(resolve, nil)
	e.Use(cache.middleware)
	e.GET("/missing", func(c echo.Context) error {
		calls++
		return echo.ErrNotFound
	})

	performRequest(t, e, "/missing")
	performRequest(t, e, "/missing")
	if calls != 2 {
		t.Fatalf("error responses must not be cached, got %d calls", calls)
	}
}
