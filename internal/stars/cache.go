package stars

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const cacheFileName = "stars.json"

// CacheEntry is one repository's cached count.
type CacheEntry struct {
	Stars     int       `json:"stars"`
	CheckedAt time.Time `json:"checked_at"`
}

// IsCacheValid reports whether e is younger than ttl at now.
func IsCacheValid(e *CacheEntry, now time.Time, ttl time.Duration) bool {
	if e == nil {
		return false
	}
	return now.Sub(e.CheckedAt) < ttl
}

func (c *Client) cachePath() string {
	return filepath.Join(c.cacheDir, cacheFileName)
}

// loadCache reads the cache file. Missing or unreadable files are an empty cache.
func (c *Client) loadCache() map[string]CacheEntry {
	entries := map[string]CacheEntry{}
	if c.cacheDir == "" {
		return entries
	}
	data, err := os.ReadFile(c.cachePath())
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return map[string]CacheEntry{}
	}
	return entries
}

func (c *Client) cached(repo string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.loadCache()[repo]
	if !ok || !IsCacheValid(&e, c.now(), c.ttl) {
		return 0, false
	}
	return e.Stars, true
}

// store records a successful fetch. Write errors are ignored; the next
// run simply fetches again.
func (c *Client) store(repo string, n int) {
	if c.cacheDir == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.loadCache()
	entries[repo] = CacheEntry{Stars: n, CheckedAt: c.now()}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return
	}
	tmp, err := os.CreateTemp(c.cacheDir, "stars-*.json.tmp")
	if err != nil {
		return
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return
	}
	os.Rename(tmp.Name(), c.cachePath())
}
