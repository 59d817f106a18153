package store

// SchemaVersion is the current database schema version
const SchemaVersion = 2

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Migration defines a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// Migrations is the list of all database migrations in order
var Migrations = []Migration{
	// Version 1 is the initial kv table without timestamps
	{
		Version:     2,
		Description: "Add updated_at to kv",
		SQL:         `ALTER TABLE kv ADD COLUMN updated_at DATETIME;`,
	},
}
