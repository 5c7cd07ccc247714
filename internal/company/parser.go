package company

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Parse failure kinds reported through ParseError.
var (
	ErrMalformedJSON = errors.New("malformed JSON")
	ErrShapeMismatch = errors.New("JSON value is not an array")
)

// ParseError describes an embedded JSON field that could not be used. It is
// only ever logged; callers receive the fallback sequence instead.
type ParseError struct {
	Field string
	Kind  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Field, e.Kind)
}

// Unwrap returns the failure kind for use with errors.Is.
func (e *ParseError) Unwrap() error { return e.Kind }

// ParseJSONField decodes raw as a JSON array, converting each element with
// decode. Absent or blank input returns fallback silently; malformed JSON or a
// non-array value returns fallback and logs a ParseError to diag.
func ParseJSONField[T any](diag *zap.Logger, field string, raw *string, fallback []T, decode func(gjson.Result) T) []T {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return fallback
	}
	if diag == nil {
		diag = zap.NewNop()
	}

	if !gjson.Valid(*raw) {
		diag.Warn("embedded field could not be parsed, using fallback",
			zap.String("field", field),
			zap.Error(&ParseError{Field: field, Kind: ErrMalformedJSON}),
		)
		return fallback
	}

	parsed := gjson.Parse(*raw)
	if !parsed.IsArray() {
		diag.Warn("embedded field could not be parsed, using fallback",
			zap.String("field", field),
			zap.String("json_type", parsed.Type.String()),
			zap.Error(&ParseError{Field: field, Kind: ErrShapeMismatch}),
		)
		return fallback
	}

	elems := parsed.Array()
	out := make([]T, 0, len(elems))
	for _, elem := range elems {
		out = append(out, decode(elem))
	}
	return out
}
