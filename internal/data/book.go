// Package data provides the data models, validation rules and database
// access for the reading log.
package data

import (
	"time"

	"github.com/aoideee/readinglog/internal/validator"
)

// Reading statuses a book can be in.
const (
	StatusReading   = "reading"
	StatusWishlist  = "wishlist"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

// Statuses lists every accepted status value.
var Statuses = []string{StatusReading, StatusWishlist, StatusPaused, StatusCompleted}

// Field limits for book records.
const (
	MaxTitleLen  = 200
	MaxAuthorLen = 100
	MaxGenreLen  = 50
	MaxMemoLen   = 500
	MinPages     = 1
	MaxPages     = 100000
	MinRating    = 1
	MaxRating    = 5
)

// Book is one reading-log entry. It maps to a row in the "books" table.
// Optional columns are pointers so an absent value round-trips as JSON null.
type Book struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	Pages         int     `json:"pages"`
	Status        string  `json:"status"`
	CompletedDate *string `json:"completed_date"`
	ImageURL      *string `json:"image_url"`
	Rating        *int    `json:"rating"`
	Memo          *string `json:"memo"`
}

// ValidateBook checks every field of a raw book payload and returns the
// normalized record. All failures are recorded in v; the returned Book is only
// meaningful when v.Valid() is true. now sets the "today" boundary for
// completed_date.
func ValidateBook(v *validator.Validator, raw map[string]any, now time.Time) *Book {
	book := &Book{}

	book.Title, _ = v.Text(raw, "title", MaxTitleLen, true)
	book.Author, _ = v.Text(raw, "author", MaxAuthorLen, true)
	book.Genre, _ = v.Text(raw, "genre", MaxGenreLen, true)

	if pages, ok := v.Int("pages", raw["pages"], MinPages, MaxPages, true); ok {
		book.Pages = int(pages)
	}

	status, ok := v.Choice("status", raw["status"], StatusCompleted, Statuses...)
	if ok {
		book.Status = status
	}

	// An invalid status leaves the date requirement undecided, so the date is
	// only checked for shape in that case.
	required := ok && status == StatusCompleted
	if date, ok := v.Date("completed_date", raw["completed_date"], now, required); ok {
		book.CompletedDate = &date
	}

	if url, ok := v.Trimmed(raw, "image_url"); ok {
		book.ImageURL = &url
	}

	if rating, ok := v.Int("rating", raw["rating"], MinRating, MaxRating, false); ok {
		r := int(rating)
		book.Rating = &r
	}

	if memo, ok := v.Text(raw, "memo", MaxMemoLen, false); ok {
		book.Memo = &memo
	}

	return book
}

// ValidateID checks a path or body id.
func ValidateID(v *validator.Validator, raw any) int64 {
	id, _ := v.Int("id", raw, 1, maxInt64Float, true)
	return id
}

// maxInt64Float is the largest int64 that survives a float64 round trip.
const maxInt64Float = 1<<53 - 1
