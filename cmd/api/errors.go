// cmd/api/errors.go
// Error-response helpers. Every failure the API reports goes through one of
// these so the JSON shape stays consistent.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aoideee/readinglog/internal/validator"
)

// logError logs an internal error at ERROR level with the request method,
// URL and request id for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("request_id", contextGetRequestID(r)),
	)
}

// errorResponse sends a JSON error envelope with the given status code and message.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	app.writeErrorEnvelope(w, r, status, envelope{"error": message})
}

func (app *applicationDependencies) writeErrorEnvelope(w http.ResponseWriter, r *http.Request, status int, data envelope) {
	err := app.writeJSON(w, status, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs a 500-level error and sends a generic message to
// the client. Engine error text never reaches the response body.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

// notFoundResponse sends a 404 Not Found error.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 Bad Request error with the error message from the caller.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse sends a 400 with the joined field messages and
// the structured failure list.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, errs validator.Errors) {
	app.writeErrorEnvelope(w, r, http.StatusBadRequest, envelope{
		"error":  errs.Error(),
		"fields": errs,
	})
}

// payloadTooLargeResponse sends a 413 when the body exceeds the configured cap.
func (app *applicationDependencies) payloadTooLargeResponse(w http.ResponseWriter, r *http.Request, limit int64) {
	app.errorResponse(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("body must not be larger than %d bytes", limit))
}

// readJSONErrorResponse picks the response for an error returned by readJSON.
func (app *applicationDependencies) readJSONErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		app.payloadTooLargeResponse(w, r, maxBytesError.Limit)
		return
	}
	app.badRequestResponse(w, r, err)
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
