package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
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
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS favorites (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		movie_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		poster_path TEXT,
		vote_average REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- A user can favorite a given movie at most once. Enforced here rather
	-- than by an application-level check so concurrent inserts cannot race.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_user_movie
		ON favorites(user_id, movie_id);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
