// cmd/api/goals.go
// HTTP handlers for monthly reading goals.
package main

import (
	"net/http"

	"github.com/aoideee/readinglog/internal/data"
	"github.com/aoideee/readinglog/internal/validator"
)

// readYearMonth reads ?year=&month=, defaulting to the current month.
func (app *applicationDependencies) readYearMonth(r *http.Request) (year, month int, errs validator.Errors) {
	qs := r.URL.Query()

	v := validator.New()
	year, month = data.ValidateYearMonth(v, qs.Get("year"), qs.Get("month"), app.now())
	return year, month, v.Errors
}

// showGoalHandler handles GET /api/goals?year=&month=.
// A month with no stored goal reports target_count 0.
func (app *applicationDependencies) showGoalHandler(w http.ResponseWriter, r *http.Request) {
	year, month, errs := app.readYearMonth(r)
	if len(errs) > 0 {
		app.failedValidationResponse(w, r, errs)
		return
	}

	goal, err := app.models.Goals.Get(r.Context(), year, month)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, goal, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateGoalHandler handles PUT /api/goals.
func (app *applicationDependencies) updateGoalHandler(w http.ResponseWriter, r *http.Request) {
	input, err := app.readJSON(w, r)
	if err != nil {
		app.readJSONErrorResponse(w, r, err)
		return
	}

	v := validator.New()
	goal := data.ValidateGoal(v, input)
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	err = app.models.Goals.Upsert(r.Context(), goal)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, goal, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// goalProgressHandler handles GET /api/goals/progress?year=&month=.
func (app *applicationDependencies) goalProgressHandler(w http.ResponseWriter, r *http.Request) {
	year, month, errs := app.readYearMonth(r)
	if len(errs) > 0 {
		app.failedValidationResponse(w, r, errs)
		return
	}

	goal, err := app.models.Goals.Get(r.Context(), year, month)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	completed, err := app.models.Books.CompletedIn(r.Context(), goal.MonthKey())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, data.NewGoalProgress(goal, completed), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
