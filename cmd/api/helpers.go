// cmd/api/helpers.go
// General-purpose request and response helpers. Error-response helpers live
// in errors.go.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/readinglog/internal/data"
	"github.com/aoideee/readinglog/internal/validator"
)

// envelope is the JSON object wrapper used for error and message responses.
type envelope map[string]any

// readIDParam extracts and validates the ":id" URL parameter added by
// httprouter. Failures are returned as validator.Errors.
func (app *applicationDependencies) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())

	v := validator.New()
	id := data.ValidateID(v, params.ByName("id"))
	if err := v.Err(); err != nil {
		return 0, err
	}
	return id, nil
}

// readString reads a string query parameter from qs, returning defaultValue
// if the key is absent or empty.
func (app *applicationDependencies) readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes the request body as a single JSON object into a raw field
// map. The body is capped at config.maxBodyBytes; exceeding it returns an
// *http.MaxBytesError.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, app.config.maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var dst map[string]any
	err := dec.Decode(&dst)
	if err != nil {
		var (
			syntaxError        *json.SyntaxError
			unmarshalTypeError *json.UnmarshalTypeError
		)
		switch {
		case errors.As(err, &syntaxError):
			return nil, fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			return nil, errors.New("body must contain a JSON object")
		case errors.Is(err, io.EOF):
			return nil, errors.New("body must not be empty")
		default:
			return nil, err
		}
	}
	if dst == nil {
		return nil, errors.New("body must contain a JSON object")
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			return nil, err
		}
		return nil, errors.New("body must only contain a single JSON value")
	}

	return dst, nil
}
