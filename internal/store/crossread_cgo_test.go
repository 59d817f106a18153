//go:build cgo

package store

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// The store file must stay readable by the C SQLite driver.
func TestStoreFileReadableByCgoDriver(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set(KeyFavorites, `[{"id":1}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s.Close()

	conn, err := sql.Open("sqlite3", Path(dir))
	if err != nil {
		t.Fatalf("sql.Open sqlite3 failed: %v", err)
	}
	defer conn.Close()

	var value string
	if err := conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, KeyFavorites).Scan(&value); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if value != `[{"id":1}]` {
		t.Errorf("value = %q", value)
	}
}
