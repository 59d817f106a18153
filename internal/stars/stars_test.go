package stars

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, hits *int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)
		switch strings.TrimPrefix(r.URL.Path, "/repos/") {
		case "facebook/react":
			fmt.Fprint(w, `{"stargazers_count": 214312, "name": "react"}`)
		case "vuejs/core":
			fmt.Fprint(w, `{"stargazers_count": 950}`)
		case "broken/json":
			fmt.Fprint(w, `{`)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	c := NewClient(WithBaseURL(srv.URL))

	n, err := c.Fetch(context.Background(), "facebook/react")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if n != 214312 {
		t.Errorf("stars = %d, want 214312", n)
	}

	if _, err := c.Fetch(context.Background(), "nobody/nothing"); err == nil {
		t.Error("expected error for 404")
	}
	if _, err := c.Fetch(context.Background(), "broken/json"); err == nil {
		t.Error("expected error for malformed body")
	}
}

func TestFetchUsesCache(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	dir := t.TempDir()
	c := NewClient(WithBaseURL(srv.URL), WithCacheDir(dir))

	for i := 0; i < 3; i++ {
		if _, err := c.Fetch(context.Background(), "facebook/react"); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
	if _, err := os.Stat(filepath.Join(dir, cacheFileName)); err != nil {
		t.Errorf("cache file not written: %v", err)
	}

	// past the TTL the count is fetched again
	c.now = func() time.Time { return time.Now().Add(7 * time.Hour) }
	if _, err := c.Fetch(context.Background(), "facebook/react"); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if hits != 2 {
		t.Errorf("server hit %d times after expiry, want 2", hits)
	}
}

func TestFailuresAreNotCached(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	c := NewClient(WithBaseURL(srv.URL), WithCacheDir(t.TempDir()))

	c.Fetch(context.Background(), "nobody/nothing")
	c.Fetch(context.Background(), "nobody/nothing")
	if hits != 2 {
		t.Errorf("server hit %d times, want 2", hits)
	}
}

func TestFetchAll(t *testing.T) {
	var hits int64
	srv := newTestServer(t, &hits)
	c := NewClient(WithBaseURL(srv.URL))

	results := c.FetchAll(context.Background(), []string{"facebook/react", "nobody/nothing", "vuejs/core"})
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Repo != "facebook/react" || results[0].Display() != "214.3k" {
		t.Errorf("react = %+v (%s)", results[0], results[0].Display())
	}
	if results[1].Err == nil || results[1].Display() != Placeholder {
		t.Errorf("missing repo = %+v", results[1])
	}
	if results[2].Display() != "950" {
		t.Errorf("vue display = %s", results[2].Display())
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		n    int
		err  error
		want string
	}{
		{0, nil, "0"},
		{999, nil, "999"},
		{28000, nil, "28k"},
		{205123, nil, "205.1k"},
		{1500000, nil, "1.5M"},
		{214312, errors.New("boom"), Placeholder},
	}
	for _, tt := range tests {
		if got := Display(tt.n, tt.err); got != tt.want {
			t.Errorf("Display(%d, %v) = %q, want %q", tt.n, tt.err, got, tt.want)
		}
	}
}

func TestIsCacheValid(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		entry *CacheEntry
		want  bool
	}{
		{"nil entry", nil, false},
		{"recent", &CacheEntry{Stars: 1, CheckedAt: now.Add(-time.Hour)}, true},
		{"expired", &CacheEntry{Stars: 1, CheckedAt: now.Add(-7 * time.Hour)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCacheValid(tt.entry, now, DefaultTTL); got != tt.want {
				t.Errorf("IsCacheValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
