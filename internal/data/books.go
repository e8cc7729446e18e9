package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
)

// MonthlyCount is the number of books completed in one calendar month.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// BookStats summarizes the whole reading log.
type BookStats struct {
	TotalBooks     int `json:"total_books"`
	CompletedBooks int `json:"completed_books"`
	TotalPages     int `json:"total_pages"`
	AveragePages   int `json:"average_pages"`
}

// BookModel provides the queries for the books table.
type BookModel struct {
	DB      *sql.DB
	Dialect Dialect
}

const bookColumns = `id, title, author, genre, pages, status, completed_date, image_url, rating, memo`

// scanBook reads one row selected with bookColumns.
func scanBook(row interface{ Scan(...any) error }) (*Book, error) {
	var (
		book     Book
		date     sql.NullString
		imageURL sql.NullString
		rating   sql.NullInt64
		memo     sql.NullString
	)
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.Pages,
		&book.Status,
		&date,
		&imageURL,
		&rating,
		&memo,
	)
	if err != nil {
		return nil, err
	}

	if date.Valid && date.String != "" {
		book.CompletedDate = &date.String
	}
	if imageURL.Valid {
		book.ImageURL = &imageURL.String
	}
	if rating.Valid {
		r := int(rating.Int64)
		book.Rating = &r
	}
	if memo.Valid {
		book.Memo = &memo.String
	}
	return &book, nil
}

// Insert adds a new book. The database-assigned id is written back into book.
func (m BookModel) Insert(ctx context.Context, book *Book) error {
	query := m.Dialect.Rebind(`
		INSERT INTO books (title, author, genre, pages, status, completed_date, image_url, rating, memo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := m.DB.QueryRowContext(ctx, query,
		book.Title,
		book.Author,
		book.Genre,
		book.Pages,
		book.Status,
		book.CompletedDate,
		book.ImageURL,
		book.Rating,
		book.Memo,
	).Scan(&book.ID)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// Get retrieves a single book by id.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(ctx context.Context, id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := m.Dialect.Rebind(`SELECT ` + bookColumns + ` FROM books WHERE id = ?`)

	book, err := scanBook(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("get book %d: %w", id, err)
		}
	}
	return book, nil
}

// GetAll lists books in the order given by filters, optionally restricted to
// one genre.
func (m BookModel) GetAll(ctx context.Context, filters Filters) ([]*Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
	var args []any
	if g := filters.genre(); g != "" {
		query += ` WHERE genre = ?`
		args = append(args, g)
	}
	query += ` ORDER BY ` + filters.orderBy()

	rows, err := m.DB.QueryContext(ctx, m.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update replaces every editable field of the book with book.ID.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Update(ctx context.Context, book *Book) error {
	query := m.Dialect.Rebind(`
		UPDATE books
		SET title = ?, author = ?, genre = ?, pages = ?, status = ?,
		    completed_date = ?, image_url = ?, rating = ?, memo = ?
		WHERE id = ?`)

	args := []any{
		book.Title,
		book.Author,
		book.Genre,
		book.Pages,
		book.Status,
		book.CompletedDate,
		book.ImageURL,
		book.Rating,
		book.Memo,
		book.ID,
	}

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}
	return expectOneRow(result)
}

// Delete removes the book with the given id.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	result, err := m.DB.ExecContext(ctx, m.Dialect.Rebind(`DELETE FROM books WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Genres returns every genre in use, alphabetically.
func (m BookModel) Genres(ctx context.Context) ([]string, error) {
	rows, err := m.DB.QueryContext(ctx, `SELECT DISTINCT genre FROM books ORDER BY genre ASC`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// completedWhere selects books that count as finished on a date.
const completedWhere = `status = 'completed' AND completed_date IS NOT NULL AND completed_date <> ''`

// Monthly counts completed books per "YYYY-MM", oldest month first.
func (m BookModel) Monthly(ctx context.Context) ([]MonthlyCount, error) {
	rows, err := m.DB.QueryContext(ctx, `
		SELECT substr(completed_date, 1, 7) AS month, COUNT(*)
		FROM books
		WHERE `+completedWhere+`
		GROUP BY substr(completed_date, 1, 7)
		ORDER BY month ASC`)
	if err != nil {
		return nil, fmt.Errorf("monthly counts: %w", err)
	}
	defer rows.Close()

	counts := []MonthlyCount{}
	for rows.Next() {
		var mc MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, mc)
	}
	return counts, rows.Err()
}

// CompletedIn counts completed books whose completed_date falls in monthKey
// ("YYYY-MM").
func (m BookModel) CompletedIn(ctx context.Context, monthKey string) (int, error) {
	query := m.Dialect.Rebind(`SELECT COUNT(*) FROM books WHERE ` + completedWhere + ` AND substr(completed_date, 1, 7) = ?`)

	var n int
	if err := m.DB.QueryRowContext(ctx, query, monthKey).Scan(&n); err != nil {
		return 0, fmt.Errorf("count completed in %s: %w", monthKey, err)
	}
	return n, nil
}

// Stats aggregates totals over every book.
func (m BookModel) Stats(ctx context.Context) (BookStats, error) {
	var s BookStats
	err := m.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(pages), 0)
		FROM books`).Scan(&s.TotalBooks, &s.CompletedBooks, &s.TotalPages)
	if err != nil {
		return BookStats{}, fmt.Errorf("book stats: %w", err)
	}
	if s.TotalBooks > 0 {
		s.AveragePages = int(math.Round(float64(s.TotalPages) / float64(s.TotalBooks)))
	}
	return s, nil
}
