package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// Decode reads exactly one JSON value from r into v. Unknown fields and
// trailing data are validation errors.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return common.NewValidationError("", "request body must contain a single JSON object")
	}
	return nil
}

// decodeError turns a json decoding failure into a validation error that
// names the offending field without echoing Go type names.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return common.NewValidationError("", "request body is empty")
	case errors.As(err, &typeErr):
		return common.NewValidationError(typeErr.Field, "must not be a "+typeErr.Value)
	}
	if rest, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		if name, uerr := strconv.Unquote(rest); uerr == nil {
			return common.NewValidationError(name, "is not a known field")
		}
	}
	return common.NewValidationError("", "malformed request body")
}

// DecodeBytes is Decode over a byte slice.
func DecodeBytes(b []byte, v any) error {
	return Decode(bytes.NewReader(b), v)
}

// DateLayout is the wire format of due dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD due date as midnight UTC.
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, common.NewValidationError(field, "must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// Message renders err for a response body. Only sentinel-classified errors
// carry detail; anything else collapses to a generic message.
func Message(err error) string {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrVersionConflict):
		return "task was modified concurrently"
	case errors.Is(err, common.ErrUserExists):
		return "user already exists"
	case errors.Is(err, common.ErrConflict):
		return "conflict"
	case errors.Is(err, common.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, common.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	case errors.Is(err, common.ErrTransient):
		return "service temporarily unavailable, retry later"
	}
	return common.ErrorInternal.Error()
}
