package telemetry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies ingestion failures so the HTTP layer can map
// them to response statuses without string matching.
type ErrorKind int

const (
	// KindMalformedPayload - request body could not be parsed.
	KindMalformedPayload ErrorKind = iota
	// KindMissingFields - required keys absent; Fields lists them.
	KindMissingFields
	// KindInvalidNumeric - a present value could not be coerced to float.
	KindInvalidNumeric
	// KindInvalidRange - battery outside 0-100.
	KindInvalidRange
	// KindUnsupportedTarget - reserved; unknown tags currently resolve
	// to the default target instead of failing.
	KindUnsupportedTarget
	// KindStoreUnavailable - resolved alias not connectable even after
	// the default-store fallback.
	KindStoreUnavailable
	// KindInternal - anything unanticipated; detail stays server-side.
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedPayload:
		return "malformed_payload"
	case KindMissingFields:
		return "missing_fields"
	case KindInvalidNumeric:
		return "invalid_numeric"
	case KindInvalidRange:
		return "invalid_range"
	case KindUnsupportedTarget:
		return "unsupported_target"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "internal"
	}
}

// Error is the typed failure produced anywhere along the ingestion
// pipeline. Message is safe to return to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  []string
}

func (e *Error) Error() string {
	return e.Message
}

// NewMalformedPayload reports an unparseable request body.
func NewMalformedPayload(err error) *Error {
	return &Error{
		Kind:    KindMalformedPayload,
		Message: fmt.Sprintf("invalid request body: %v", err),
	}
}

// NewMissingFields reports absent required keys, in declaration order.
func NewMissingFields(fields []string) *Error {
	return &Error{
		Kind:    KindMissingFields,
		Message: fmt.Sprintf("missing required fields: %s", strings.Join(fields, ", ")),
		Fields:  fields,
	}
}

// NewInvalidNumeric reports a value that could not be coerced to float.
func NewInvalidNumeric(field string, value interface{}) *Error {
	return &Error{
		Kind:    KindInvalidNumeric,
		Message: fmt.Sprintf("field %q has non-numeric value %v", field, value),
		Fields:  []string{field},
	}
}

// NewInvalidRange reports an out-of-range battery level.
func NewInvalidRange(field string, value float64) *Error {
	return &Error{
		Kind:    KindInvalidRange,
		Message: fmt.Sprintf("field %q value %g outside allowed range 0-100", field, value),
		Fields:  []string{field},
	}
}

// NewStoreUnavailable reports a store that stayed unreachable after the
// default-alias fallback.
func NewStoreUnavailable(alias string) *Error {
	return &Error{
		Kind:    KindStoreUnavailable,
		Message: fmt.Sprintf("store %q is not available", alias),
	}
}

// AsError unwraps a telemetry error from an error chain.
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
