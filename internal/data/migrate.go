package data

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration is one named schema step. Every step is idempotent: running it
// against a schema that already has the change is a no-op.
type Migration struct {
	Name string
	Up   func(ctx context.Context, db *sql.DB, d Dialect) error
}

// Migrations returns the ordered schema steps. Fresh databases get the full
// books table from the first step; the column patches bring databases created
// before those columns existed up to date.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_books", Up: createBooks},
		{Name: "add_books_status", Up: addColumn("books", "status", "TEXT NOT NULL DEFAULT 'completed'")},
		{Name: "add_books_image_url", Up: addColumn("books", "image_url", "TEXT")},
		{Name: "add_books_rating", Up: addColumn("books", "rating", "INTEGER")},
		{Name: "add_books_memo", Up: addColumn("books", "memo", "TEXT")},
		{Name: "relax_books_completed_date", Up: relaxCompletedDate},
		{Name: "index_books_genre", Up: execStep(`CREATE INDEX IF NOT EXISTS idx_books_genre ON books(genre)`)},
		{Name: "create_reading_goals", Up: execStep(`CREATE TABLE IF NOT EXISTS reading_goals (
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			target_count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (year, month)
		)`)},
	}
}

// Migrate applies every step in order. It must finish before the server
// starts accepting requests.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	for _, m := range Migrations() {
		if err := m.Up(ctx, db, d); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
	}
	return nil
}

func booksDDL(d Dialect, table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id %s,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		genre TEXT NOT NULL,
		pages INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'completed',
		completed_date TEXT,
		image_url TEXT,
		rating INTEGER,
		memo TEXT
	)`, table, d.autoIncrementPK())
}

func createBooks(ctx context.Context, db *sql.DB, d Dialect) error {
	_, err := db.ExecContext(ctx, booksDDL(d, "books"))
	return err
}

func execStep(stmt string) func(context.Context, *sql.DB, Dialect) error {
	return func(ctx context.Context, db *sql.DB, _ Dialect) error {
		_, err := db.ExecContext(ctx, stmt)
		return err
	}
}

func addColumn(table, column, def string) func(context.Context, *sql.DB, Dialect) error {
	return func(ctx context.Context, db *sql.DB, d Dialect) error {
		cols, err := tableColumns(ctx, db, d, table)
		if err != nil {
			return err
		}
		if _, ok := cols[column]; ok {
			return nil
		}
		_, err = db.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, def))
		return err
	}
}

// relaxCompletedDate drops the NOT NULL constraint that early versions put on
// completed_date. SQLite cannot alter a column constraint, so the table is
// rebuilt inside a transaction.
func relaxCompletedDate(ctx context.Context, db *sql.DB, d Dialect) error {
	if d == DialectPostgres {
		_, err := db.ExecContext(ctx, `ALTER TABLE books ALTER COLUMN completed_date DROP NOT NULL`)
		return err
	}

	cols, err := tableColumns(ctx, db, d, "books")
	if err != nil {
		return err
	}
	if !cols["completed_date"] {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const columns = `id, title, author, genre, pages, status, completed_date, image_url, rating, memo`
	stmts := []string{
		`DROP TABLE IF EXISTS books_rebuild`,
		booksDDL(d, "books_rebuild"),
		`INSERT INTO books_rebuild (` + columns + `) SELECT ` + columns + ` FROM books`,
		`DROP TABLE books`,
		`ALTER TABLE books_rebuild RENAME TO books`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// tableColumns maps each column of table to whether it is declared NOT NULL.
func tableColumns(ctx context.Context, db *sql.DB, d Dialect, table string) (map[string]bool, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if d == DialectPostgres {
		rows, err = db.QueryContext(ctx, `
			SELECT column_name, is_nullable = 'NO'
			FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1`, table)
	} else {
		rows, err = db.QueryContext(ctx, `SELECT name, "notnull" = 1 FROM pragma_table_info(?)`, table)
	}
	if err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", table, err)
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			name    string
			notNull bool
		)
		if err := rows.Scan(&name, &notNull); err != nil {
			return nil, err
		}
		cols[name] = notNull
	}
	return cols, rows.Err()
}
