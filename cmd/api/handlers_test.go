package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/readinglog/internal/data"
)

func TestCreateBook_EchoesFieldsWithNewID(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodPost, "/api/books", bookPayload())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got data.Book
	decode(t, rr, &got)
	assert.Positive(t, got.ID)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "A", got.Author)
	assert.Equal(t, "G", got.Genre)
	assert.Equal(t, 100, got.Pages)
	assert.Equal(t, "completed", got.Status)
	require.NotNil(t, got.CompletedDate)
	assert.Equal(t, "2024-01-01", *got.CompletedDate)
	assert.Nil(t, got.Rating)

	rr = ta.do(t, http.MethodGet, "/api/books", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list []data.Book
	decode(t, rr, &list)
	require.Len(t, list, 1)
	assert.Equal(t, got, list[0])
}

func TestCreateBook_ValidationFailure(t *testing.T) {
	ta := newTestApplication(t)

	payload := bookPayload()
	delete(payload, "title")
	delete(payload, "completed_date")
	payload["pages"] = "lots"

	rr := ta.do(t, http.MethodPost, "/api/books", payload)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Error  string `json:"error"`
		Fields []struct {
			Field string `json:"field"`
			Code  string `json:"code"`
		} `json:"fields"`
	}
	decode(t, rr, &body)
	assert.Equal(t, "title is required, pages has an invalid type, completed_date is required", body.Error)
	require.Len(t, body.Fields, 3)
	assert.Equal(t, "title", body.Fields[0].Field)
	assert.Equal(t, "required", body.Fields[0].Code)
}

func TestCreateBook_NonCompletedMayOmitDate(t *testing.T) {
	ta := newTestApplication(t)

	payload := bookPayload()
	payload["status"] = "reading"
	delete(payload, "completed_date")

	rr := ta.do(t, http.MethodPost, "/api/books", payload)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"completed_date": null`)
}

func TestCreateBook_FutureDateRejected(t *testing.T) {
	ta := newTestApplication(t)

	payload := bookPayload()
	payload["status"] = "wishlist"
	payload["completed_date"] = "2024-06-16"

	rr := ta.do(t, http.MethodPost, "/api/books", payload)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "future_date")
}

func TestCreateBook_BadBodies(t *testing.T) {
	ta := newTestApplication(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"empty", "", http.StatusBadRequest},
		{"malformed", `{"title": "T",`, http.StatusBadRequest},
		{"syntax", `{"title" "T"}`, http.StatusBadRequest},
		{"array", `[1, 2]`, http.StatusBadRequest},
		{"null", `null`, http.StatusBadRequest},
		{"two values", `{} {}`, http.StatusBadRequest},
		{"too large", `{"memo": "` + strings.Repeat("m", 4096) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ta.do(t, http.MethodPost, "/api/books", tt.body)
			assert.Equal(t, tt.code, rr.Code, rr.Body.String())
		})
	}
}

func TestUpdateBook(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodPost, "/api/books", bookPayload())
	require.Equal(t, http.StatusOK, rr.Code)
	var created data.Book
	decode(t, rr, &created)

	payload := bookPayload()
	payload["title"] = "Renamed"
	payload["status"] = "paused"
	payload["rating"] = 2
	delete(payload, "completed_date")

	rr = ta.do(t, http.MethodPut, "/api/books/"+itoa(created.ID), payload)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated data.Book
	decode(t, rr, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "paused", updated.Status)
	assert.Nil(t, updated.CompletedDate)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 2, *updated.Rating)
}

func TestUpdateBook_UnknownIDIsNotFound(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodPut, "/api/books/999", bookPayload())
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateBook_InvalidID(t *testing.T) {
	ta := newTestApplication(t)

	for _, id := range []string{"abc", "0", "-1", "2.5"} {
		rr := ta.do(t, http.MethodPut, "/api/books/"+id, bookPayload())
		assert.Equal(t, http.StatusBadRequest, rr.Code, id)
	}
}

func TestDeleteBook(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodPost, "/api/books", bookPayload())
	var created data.Book
	decode(t, rr, &created)

	rr = ta.do(t, http.MethodDelete, "/api/books/"+itoa(created.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	decode(t, rr, &body)
	assert.Equal(t, created.ID, body.ID)
	assert.NotEmpty(t, body.Message)

	rr = ta.do(t, http.MethodDelete, "/api/books/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListBooks_SortAndGenre(t *testing.T) {
	ta := newTestApplication(t)

	for _, p := range []struct {
		title, genre string
		pages        int
	}{
		{"Short", "SF", 120},
		{"Long", "SF", 800},
		{"Other", "Essay", 300},
	} {
		payload := bookPayload()
		payload["title"] = p.title
		payload["genre"] = p.genre
		payload["pages"] = p.pages
		rr := ta.do(t, http.MethodPost, "/api/books", payload)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := ta.do(t, http.MethodGet, "/api/books?sort=pages_desc&genre=SF", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var books []data.Book
	decode(t, rr, &books)
	require.Len(t, books, 2)
	assert.Equal(t, "Long", books[0].Title)
	assert.Equal(t, "Short", books[1].Title)

	rr = ta.do(t, http.MethodGet, "/api/books/genres", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var genres []string
	decode(t, rr, &genres)
	assert.Equal(t, []string{"Essay", "SF"}, genres)
}

func TestListBooks_EmptyIsArray(t *testing.T) {
	ta := newTestApplication(t)

	for _, path := range []string{"/api/books", "/api/books/genres", "/api/books/monthly"} {
		rr := ta.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "[]\n", rr.Body.String(), path)
	}
}

func TestMonthlyCounts(t *testing.T) {
	ta := newTestApplication(t)

	for _, p := range []struct{ status, date string }{
		{"completed", "2024-01-05"},
		{"completed", "2024-01-20"},
		{"completed", "2024-03-02"},
		{"paused", "2024-03-03"},
	} {
		payload := bookPayload()
		payload["status"] = p.status
		payload["completed_date"] = p.date
		rr := ta.do(t, http.MethodPost, "/api/books", payload)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := ta.do(t, http.MethodGet, "/api/books/monthly", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var counts []data.MonthlyCount
	decode(t, rr, &counts)
	assert.Equal(t, []data.MonthlyCount{
		{Month: "2024-01", Count: 2},
		{Month: "2024-03", Count: 1},
	}, counts)
}

func TestStats(t *testing.T) {
	ta := newTestApplication(t)

	ta.do(t, http.MethodPost, "/api/books", bookPayload())

	rr := ta.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats data.BookStats
	decode(t, rr, &stats)
	assert.Equal(t, data.BookStats{TotalBooks: 1, CompletedBooks: 1, TotalPages: 100, AveragePages: 100}, stats)
}

func TestServerErrorDoesNotLeakDetail(t *testing.T) {
	ta := newTestApplication(t)
	require.NoError(t, ta.db.Close())

	rr := ta.do(t, http.MethodGet, "/api/books", nil)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "sql")
	assert.Contains(t, rr.Body.String(), "the server encountered a problem")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ta.do(t, http.MethodPatch, "/api/books/1", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealthcheckAndMetrics(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.do(t, http.MethodGet, "/healthcheck", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status": "available"`)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	rr = ta.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `readinglog_http_requests_total{code="200",method="GET"}`)
}
