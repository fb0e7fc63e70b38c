// Package testutil provides test utilities for database setup.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"
)

// Schema contains the records table as the migrations produce it, for tests
// that want an in-memory database without going through NewDB.
const Schema = `
CREATE TABLE records (
	seq INTEGER PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	level TEXT NOT NULL DEFAULT 'info',
	created_at INTEGER NOT NULL
);

CREATE INDEX idx_records_level ON records(level);
`

// NewTestDB creates an in-memory SQLite database with the full test schema.
// The caller is responsible for closing the database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	_, err = db.Exec(Schema)
	require.NoError(t, err)
	return db
}
