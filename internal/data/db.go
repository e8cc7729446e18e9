package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"   // Register the PostgreSQL driver with database/sql.
	_ "modernc.org/sqlite" // Register the pure-Go SQLite driver with database/sql.
)

// Dialect names the SQL engine behind a *sql.DB. Queries are written with "?"
// placeholders and rebound per dialect.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a driver name from configuration to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3", "":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pq":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// Rebind rewrites "?" placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// autoIncrementPK is the column definition for a system-assigned integer key.
func (d Dialect) autoIncrementPK() string {
	if d == DialectPostgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "INTEGER PRIMARY KEY AUTOINCREMENT"
}

// Open opens and pings the database for dialect d. SQLite is limited to a
// single connection so the engine serializes all writes.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	if d == DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d, err)
	}

	if d == DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxIdleTime(15 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d, err)
	}
	return db, nil
}

// sqliteDSN adds a busy timeout to plain file paths. In-memory databases and
// DSNs that already carry parameters are used as given.
func sqliteDSN(dsn string) string {
	if dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_pragma=busy_timeout(5000)"
}
