package database

import (
	"database/sql"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool with foreign keys enforced.
func New(dataSourceName string) (*sql.DB, error) {
	sep := "?"
	if strings.Contains(dataSourceName, "?") {
		sep = "&"
	}
	dsn := dataSourceName + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		about TEXT NOT NULL,
		avatar TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cards (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		link TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		created_at INTEGER NOT NULL -- unix milliseconds
	);

	-- The composite key makes likes a set; rowid keeps insertion order.
	CREATE TABLE IF NOT EXISTS card_likes (
		card_id TEXT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		PRIMARY KEY (card_id, user_id)
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
