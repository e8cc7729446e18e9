// cmd/api/handlers.go
// HTTP handlers for the books resource. Each handler is a method on
// *applicationDependencies so it has access to the logger, config and models.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/readinglog/internal/data"
	"github.com/aoideee/readinglog/internal/validator"
)

// listBooksHandler handles GET /api/books?sort=&genre=.
// Unknown sort keys fall back to newest completion first.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	filters := data.Filters{
		Sort:  app.readString(qs, "sort", data.SortDate),
		Genre: qs.Get("genre"),
	}

	books, err := app.models.Books.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listGenresHandler handles GET /api/books/genres.
func (app *applicationDependencies) listGenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := app.models.Books.Genres(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, genres, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// monthlyCountsHandler handles GET /api/books/monthly.
func (app *applicationDependencies) monthlyCountsHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := app.models.Books.Monthly(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, counts, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /api/books.
// The body is validated field by field; every failure is reported together.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	input, err := app.readJSON(w, r)
	if err != nil {
		app.readJSONErrorResponse(w, r, err)
		return
	}

	v := validator.New()
	book := data.ValidateBook(v, input, app.now())
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Books.Insert(r.Context(), book)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.logger.Info("book created", "id", book.ID, "request_id", contextGetRequestID(r))

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /api/books/:id.
// The body replaces the whole record; it is validated exactly like a create.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.idParamErrorResponse(w, r, err)
		return
	}

	input, err := app.readJSON(w, r)
	if err != nil {
		app.readJSONErrorResponse(w, r, err)
		return
	}

	v := validator.New()
	book := data.ValidateBook(v, input, app.now())
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}
	book.ID = id

	err = app.models.Books.Update(r.Context(), book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /api/books/:id.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.idParamErrorResponse(w, r, err)
		return
	}

	err = app.models.Books.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.logger.Info("book deleted", "id", id, "request_id", contextGetRequestID(r))

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "book successfully deleted", "id": id}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// statsHandler handles GET /api/stats.
func (app *applicationDependencies) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.models.Books.Stats(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, stats, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// healthcheckHandler handles GET /healthcheck.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{
		"status":      "available",
		"environment": app.config.environment,
		"version":     appVersion,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *applicationDependencies) idParamErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var errs validator.Errors
	if errors.As(err, &errs) {
		app.failedValidationResponse(w, r, errs)
		return
	}
	app.badRequestResponse(w, r, err)
}
