// Package apperr carries the error taxonomy shared by services and handlers.
// Every business failure is one of a closed set of kinds so handlers can map
// errors to HTTP statuses without matching on message text.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindPermission
	KindNotFound
	KindDelivery
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	case KindDelivery:
		return "delivery"
	default:
		return "internal"
	}
}

type Error struct {
	Kind  Kind
	Field string // offending field, for validation/conflict kinds
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ==================== CONSTRUCTORS ====================

// Validation reports malformed or out-of-range input on a field
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

// Conflict reports a uniqueness violation on a field
func Conflict(field, msg string) *Error {
	return &Error{Kind: KindConflict, Field: field, Msg: msg}
}

// Forbidden reports a failed authorization check. The message is always the
// same terminal outcome: which predicate failed is never leaked.
func Forbidden() *Error {
	return &Error{Kind: KindPermission, Msg: "You do not have permission to perform this action"}
}

// NotFound reports an absent entity
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Msg: what + " not found"}
}

// Delivery reports a failed outbound notification
func Delivery(err error) *Error {
	return &Error{Kind: KindDelivery, Msg: "failed to deliver notification", Err: err}
}

// Internal wraps an unexpected failure
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// ==================== INSPECTION ====================

// KindOf returns the kind of err, or KindInternal for untyped errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FieldOf returns the offending field of err, if any
func FieldOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
