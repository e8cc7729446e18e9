// Package validator provides a Validator type for accumulating field-level
// validation failures, plus the coercion helpers used to turn loosely typed
// JSON input into clean values.
package validator

import (
	"regexp"
	"strings"
)

// DateRX matches a strict YYYY-MM-DD date string.
var DateRX = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Code identifies why a field failed validation. Codes are stable and
// locale-independent; Message renders an English description.
type Code string

const (
	CodeRequired      Code = "required"
	CodeInvalidType   Code = "invalid_type"
	CodeTooLong       Code = "too_long"
	CodeOutOfRange    Code = "out_of_range"
	CodeInvalidChoice Code = "invalid_choice"
	CodeInvalidFormat Code = "invalid_format"
	CodeInvalidDate   Code = "invalid_date"
	CodeFutureDate    Code = "future_date"
)

// FieldError is a single validation failure. Min and Max carry the bounds
// for length and range failures so callers can format their own messages.
type FieldError struct {
	Field string `json:"field"`
	Code  Code   `json:"code"`
	Min   *int64 `json:"min,omitempty"`
	Max   *int64 `json:"max,omitempty"`
}

// Message renders the failure as a short English sentence.
func (e FieldError) Message() string {
	switch e.Code {
	case CodeRequired:
		return e.Field + " is required"
	case CodeInvalidType:
		return e.Field + " has an invalid type"
	case CodeTooLong:
		if e.Max != nil {
			return e.Field + " must be at most " + itoa(*e.Max) + " characters"
		}
		return e.Field + " is too long"
	case CodeOutOfRange:
		if e.Min != nil && e.Max != nil {
			return e.Field + " must be an integer between " + itoa(*e.Min) + " and " + itoa(*e.Max)
		}
		return e.Field + " is out of range"
	case CodeInvalidChoice:
		return e.Field + " is not an allowed value"
	case CodeInvalidFormat:
		return e.Field + " must be in YYYY-MM-DD format"
	case CodeInvalidDate:
		return e.Field + " is not a valid date"
	case CodeFutureDate:
		return e.Field + " cannot be in the future"
	default:
		return e.Field + " is invalid"
	}
}

// Errors is an ordered list of field failures. It implements error so a
// failed validation can travel through ordinary error returns.
type Errors []FieldError

func (errs Errors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message())
	}
	return strings.Join(msgs, ", ")
}

// Validator collects failures in the order they were found.
// A Validator with no failures is considered valid.
type Validator struct {
	Errors Errors
}

// New creates and returns a fresh, empty Validator.
func New() *Validator {
	return &Validator{}
}

// Valid reports whether no failures have been recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Err returns the collected failures as an error, or nil when valid.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return v.Errors
}

// Has reports whether field already has a recorded failure.
func (v *Validator) Has(field string) bool {
	for _, e := range v.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Add records a failure. Only the first failure for a field is kept.
func (v *Validator) Add(e FieldError) {
	if !v.Has(e.Field) {
		v.Errors = append(v.Errors, e)
	}
}

// AddError records field as failing with code.
func (v *Validator) AddError(field string, code Code) {
	v.Add(FieldError{Field: field, Code: code})
}

// Check records a failure for field only when ok is false:
//
//	v.Check(title != "", "title", validator.CodeRequired)
func (v *Validator) Check(ok bool, field string, code Code) {
	if !ok {
		v.AddError(field, code)
	}
}

// In returns true if value is present in list.
func In(value string, list ...string) bool {
	for _, item := range list {
		if value == item {
			return true
		}
	}
	return false
}

// Matches returns true if value matches rx.
func Matches(value string, rx *regexp.Regexp) bool {
	return rx.MatchString(value)
}
