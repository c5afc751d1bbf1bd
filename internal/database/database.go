package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New opens a SQLite database. SQLite allows one writer at a time, so the
// pool is capped at a single connection; this also keeps ":memory:" databases
// shared across calls.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS identities (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		-- Topic list stored as JSON text
		preferred_topics_json TEXT NOT NULL DEFAULT '[]',
		difficulty_level TEXT NOT NULL DEFAULT 'medium',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS performance_records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		identity_id TEXT NOT NULL,
		activity TEXT NOT NULL,
		metrics_json TEXT NOT NULL,
		recorded_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_performance_records_identity
		ON performance_records (identity_id, seq);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
