package store

import (
	"database/sql"
	"fmt"
)

// columnExists checks whether a column exists on a table
func (s *SQLite) columnExists(table, column string) (bool, error) {
	rows, err := s.conn.Query(fmt.Sprintf("PRAGMA table_info(%s);", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// SchemaVersion returns the version recorded in schema_info, 0 when unset.
func (s *SQLite) SchemaVersion() (int, error) {
	var version string
	err := s.conn.QueryRow("SELECT value FROM schema_info WHERE key = 'version'").Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		// schema_info may not exist yet
		return 0, nil
	}
	var v int
	fmt.Sscanf(version, "%d", &v)
	return v, nil
}

func (s *SQLite) setSchemaVersion(version int) error {
	_, err := s.conn.Exec(`INSERT OR REPLACE INTO schema_info (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", version))
	return err
}

// RunMigrations brings the database up to SchemaVersion and returns how many
// migrations ran.
func (s *SQLite) RunMigrations() (int, error) {
	current, _ := s.SchemaVersion()
	if current >= SchemaVersion {
		return 0, nil
	}

	var run int
	err := s.withWriteLock(func() error {
		var err error
		run, err = s.runMigrations()
		return err
	})
	return run, err
}

func (s *SQLite) runMigrations() (int, error) {
	fresh, err := s.isFresh()
	if err != nil {
		return 0, err
	}
	if _, err := s.conn.Exec(schema); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}
	if fresh {
		if err := s.setSchemaVersion(SchemaVersion); err != nil {
			return 0, fmt.Errorf("set version %d: %w", SchemaVersion, err)
		}
		return 0, nil
	}

	current, err := s.SchemaVersion()
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	if current == 0 {
		current = 1
	}

	run := 0
	for _, m := range Migrations {
		if m.Version <= current {
			continue
		}
		if m.Version == 2 {
			exists, err := s.columnExists("kv", "updated_at")
			if err != nil {
				return run, fmt.Errorf("check column updated_at: %w", err)
			}
			if exists {
				if err := s.setSchemaVersion(m.Version); err != nil {
					return run, fmt.Errorf("set version %d: %w", m.Version, err)
				}
				run++
				continue
			}
		}
		if _, err := s.conn.Exec(m.SQL); err != nil {
			return run, fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
		if err := s.setSchemaVersion(m.Version); err != nil {
			return run, fmt.Errorf("set version %d: %w", m.Version, err)
		}
		run++
	}
	return run, nil
}

// isFresh reports whether the kv table has not been created yet.
func (s *SQLite) isFresh() (bool, error) {
	var count int
	err := s.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
