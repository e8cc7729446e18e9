package data

import (
	"database/sql"
	"errors"
	"strings"
)

// Models groups the table models so handlers reach the database through a
// single injected value.
type Models struct {
	Books BookModel
	Goals GoalModel
}

// NewModels wires every model to the given handle and dialect.
func NewModels(db *sql.DB, d Dialect) Models {
	return Models{
		Books: BookModel{DB: db, Dialect: d},
		Goals: GoalModel{DB: db, Dialect: d},
	}
}

// ErrRecordNotFound is returned when an id-targeted statement matches no row.
var ErrRecordNotFound = errors.New("record not found")

// Sort keys accepted by the book listing.
const (
	SortDate      = "date"
	SortDateAsc   = "date_asc"
	SortTitle     = "title"
	SortPagesDesc = "pages_desc"
	SortPagesAsc  = "pages_asc"
)

// sortClauses maps each sort key to its ORDER BY clause. Every clause ends
// with an id tiebreak in the same direction so orderings are total.
// "completed_date IS NULL" sorts missing dates last on both engines.
var sortClauses = map[string]string{
	SortDate:      "completed_date IS NULL, completed_date DESC, id DESC",
	SortDateAsc:   "completed_date IS NULL, completed_date ASC, id ASC",
	SortTitle:     "title ASC, id ASC",
	SortPagesDesc: "pages DESC, id DESC",
	SortPagesAsc:  "pages ASC, id ASC",
}

// Filters holds the listing parameters taken from the query string.
type Filters struct {
	Sort  string
	Genre string
}

// SortKey returns the effective sort key, falling back to SortDate for
// anything unrecognized.
func (f Filters) SortKey() string {
	if _, ok := sortClauses[f.Sort]; ok {
		return f.Sort
	}
	return SortDate
}

func (f Filters) orderBy() string {
	return sortClauses[f.SortKey()]
}

// genre returns the genre restriction, or "" when the filter is blank.
// The stored value is matched exactly, without case folding.
func (f Filters) genre() string {
	if strings.TrimSpace(f.Genre) == "" {
		return ""
	}
	return f.Genre
}
