package validator

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	errAbsent     = errors.New("value is absent")
	errNotNumeric = errors.New("value is not numeric")
)

// Sanitize strips HTML angle brackets and surrounding whitespace.
func Sanitize(s string) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return strings.TrimSpace(s)
}

// absent reports whether a raw JSON value counts as "not provided".
func absent(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

// toNumber converts JSON numbers, Go integers and numeric strings to a float.
func toNumber(value any) (float64, error) {
	switch n := value.(type) {
	case nil:
		return 0, errAbsent
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, errAbsent
		}
		return strconv.ParseFloat(s, 64)
	default:
		return 0, errNotNumeric
	}
}

// Text validates a string field from raw. The value is sanitized before the
// emptiness and length checks. ok is false when the field is absent or failed.
func (v *Validator) Text(raw map[string]any, field string, maxLen int, required bool) (value string, ok bool) {
	rv, present := raw[field]
	if !present || rv == nil {
		v.Check(!required, field, CodeRequired)
		return "", false
	}

	s, isString := rv.(string)
	if !isString {
		v.AddError(field, CodeInvalidType)
		return "", false
	}

	s = Sanitize(s)
	if s == "" {
		v.Check(!required, field, CodeRequired)
		return "", false
	}

	if utf8.RuneCountInString(s) > maxLen {
		m := int64(maxLen)
		v.Add(FieldError{Field: field, Code: CodeTooLong, Max: &m})
		return "", false
	}
	return s, true
}

// Trimmed validates an optional string field that is only trimmed, never
// sanitized or length-checked.
func (v *Validator) Trimmed(raw map[string]any, field string) (string, bool) {
	rv, present := raw[field]
	if !present || rv == nil {
		return "", false
	}
	s, isString := rv.(string)
	if !isString {
		v.AddError(field, CodeInvalidType)
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Int validates value as an integer in [min, max]. Strings are coerced; empty
// strings and nil are treated as absent. ok is false when the value is absent
// or failed validation.
func (v *Validator) Int(field string, value any, min, max int64, required bool) (n int64, ok bool) {
	f, err := toNumber(value)
	switch {
	case errors.Is(err, errAbsent):
		v.Check(!required, field, CodeRequired)
		return 0, false
	case err != nil, math.IsNaN(f), math.IsInf(f, 0), f != math.Trunc(f):
		v.AddError(field, CodeInvalidType)
		return 0, false
	case f < float64(min) || f > float64(max):
		v.Add(FieldError{Field: field, Code: CodeOutOfRange, Min: &min, Max: &max})
		return 0, false
	}
	return int64(f), true
}

// Date validates value as a strict YYYY-MM-DD calendar date that is not
// later than the day containing now. ok is false when absent or failed.
func (v *Validator) Date(field string, value any, now time.Time, required bool) (date string, ok bool) {
	if absent(value) {
		v.Check(!required, field, CodeRequired)
		return "", false
	}

	s, isString := value.(string)
	if !isString {
		v.AddError(field, CodeInvalidType)
		return "", false
	}
	s = strings.TrimSpace(s)

	if !Matches(s, DateRX) {
		v.AddError(field, CodeInvalidFormat)
		return "", false
	}

	d, err := time.ParseInLocation(time.DateOnly, s, now.Location())
	if err != nil {
		v.AddError(field, CodeInvalidDate)
		return "", false
	}

	y, m, day := now.Date()
	endOfToday := time.Date(y, m, day, 23, 59, 59, 999999999, now.Location())
	if d.After(endOfToday) {
		v.AddError(field, CodeFutureDate)
		return "", false
	}
	return s, true
}

// Choice validates value as one of the allowed strings. An absent value
// yields def.
func (v *Validator) Choice(field string, value any, def string, allowed ...string) (string, bool) {
	if absent(value) {
		return def, true
	}
	s, isString := value.(string)
	if !isString {
		v.AddError(field, CodeInvalidType)
		return "", false
	}
	s = strings.TrimSpace(s)
	if !In(s, allowed...) {
		v.AddError(field, CodeInvalidChoice)
		return "", false
	}
	return s, true
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
