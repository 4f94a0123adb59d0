// Package errs defines the failure taxonomy shared by every layer.
//
// Errors carry a Kind plus a structured context payload (the offending
// ids or fields) rather than a bare string, so the transport layer can
// translate them to status codes and callers can diagnose failures
// programmatically.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	// KindFail is an unclassified internal failure.
	KindFail Kind = iota
	// KindNotFound means a referenced entity is absent.
	KindNotFound
	// KindAlreadyExists means an id collided on create.
	KindAlreadyExists
	// KindBadRequest means malformed, missing or unknown request fields.
	KindBadRequest
	// KindUnauthenticated means a missing, invalid or mismatched token.
	KindUnauthenticated
	// KindExternalService means the catalog collaborator is unreachable
	// or returned an error.
	KindExternalService
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindAlreadyExists:
		return "ALREADY_EXISTS"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindExternalService:
		return "EXT_SVC_FAIL"
	default:
		return "FAIL"
	}
}

// Error is a classified failure with structured context.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]string

	wrapped error
}

// Error formats the kind, message and sorted context pairs.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, e.Context[k])
		}
	}
	return b.String()
}

// Unwrap exposes the underlying cause, if any.
func (e *Error) Unwrap() error { return e.wrapped }

// MarshalJSON renders the kind by name rather than ordinal.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind    string            `json:"kind"`
		Message string            `json:"message"`
		Context map[string]string `json:"context,omitempty"`
	}{e.Kind.String(), e.Message, e.Context})
}

// New creates an unclassified failure.
func New(message string, kv ...string) *Error {
	return newError(KindFail, message, kv)
}

// NotFound reports an absent entity; kv pairs name the offending ids.
func NotFound(message string, kv ...string) *Error {
	return newError(KindNotFound, message, kv)
}

// AlreadyExists reports an id collision on create.
func AlreadyExists(message string, kv ...string) *Error {
	return newError(KindAlreadyExists, message, kv)
}

// Unauthenticated reports a missing, invalid or mismatched token.
func Unauthenticated(message string, kv ...string) *Error {
	return newError(KindUnauthenticated, message, kv)
}

// BadRequest reports aggregated field violations as a field→reason map.
func BadRequest(fields map[string]string) *Error {
	return &Error{
		Kind:    KindBadRequest,
		Message: "invalid request",
		Context: fields,
	}
}

// ExternalService wraps a collaborator failure.
func ExternalService(message string, cause error) *Error {
	return &Error{
		Kind:    KindExternalService,
		Message: message,
		wrapped: cause,
	}
}

func newError(kind Kind, message string, kv []string) *Error {
	e := &Error{Kind: kind, Message: message}
	if len(kv) > 0 {
		e.Context = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Context[kv[i]] = kv[i+1]
		}
	}
	return e
}

// KindOf classifies any error; non-taxonomy errors report KindFail.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindFail
}

// Fields returns the field→reason map of a BAD_REQUEST error, or nil.
func Fields(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindBadRequest {
		return e.Context
	}
	return nil
}
