package services

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindPayment    Kind = "payment"
)

// Error is a failure the caller is allowed to see. Anything else coming out of
// a service is unexpected and must not be shown to the client.
type Error struct {
	Kind    Kind
	Message string
	// Detail is an optional extra reason, e.g. the gateway's decline message.
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func newError(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) error  { return newError(KindValidation, format, args...) }
func notFound(format string, args ...any) error { return newError(KindNotFound, format, args...) }

var ErrBadCreds = &Error{Kind: KindAuth, Message: "Invalid email or password"}

// KindOf returns the kind of a service error, or "" for unexpected errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
