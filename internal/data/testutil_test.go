package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixedNow is the clock used by validation tests.
var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)

// newTestDB returns a migrated in-memory SQLite database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(context.Background(), DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db, DialectSQLite))
	return db
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

// insertBook stores a minimal book and returns it with its new id.
func insertBook(t *testing.T, m BookModel, title, genre string, pages int, status string, date *string) *Book {
	t.Helper()

	b := &Book{
		Title:         title,
		Author:        "Author",
		Genre:         genre,
		Pages:         pages,
		Status:        status,
		CompletedDate: date,
	}
	require.NoError(t, m.Insert(context.Background(), b))
	require.NotZero(t, b.ID)
	return b
}
