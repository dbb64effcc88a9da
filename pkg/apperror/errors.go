package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so callers can branch on it without parsing messages.
type Kind string

const (
	KindNotFound      Kind = "NOT_FOUND"
	KindAlreadyExists Kind = "ALREADY_EXISTS"
	KindExtending     Kind = "EXTENDING"
	KindBreakPeriod   Kind = "BREAK_PERIOD"
	KindInUse         Kind = "IN_USE"
	KindValidation    Kind = "VALIDATION_ERROR"
	KindUnauthorized  Kind = "UNAUTHORIZED"
	KindForbidden     Kind = "FORBIDDEN"
	KindInternal      Kind = "INTERNAL_ERROR"
)

// Subject names what a NotFound / AlreadyExists / InUse error is about.
type Subject string

const (
	SubjectMovie     Subject = "movie"
	SubjectRoom      Subject = "room"
	SubjectBoth      Subject = "movie and room"
	SubjectScreening Subject = "screening"
	SubjectUser      Subject = "user"
	SubjectSession   Subject = "session"
)

// Error is a typed domain error.
type Error struct {
	Kind    Kind    `json:"code"`
	Subject Subject `json:"subject,omitempty"`
	Message string  `json:"message"`
	Err     error   `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on Kind, and on Subject when the target names one, so that
// errors.Is(err, ErrNotFound) holds for every subject while
// errors.Is(err, NotFound(SubjectRoom)) only holds for rooms.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Subject == "" || t.Subject == e.Subject
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	if e == nil {
		return http.StatusOK
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists, KindExtending, KindBreakPeriod, KindInUse:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new Error instance.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an existing error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound reports a missing movie, room, both, or screening.
func NotFound(subject Subject) *Error {
	msg := fmt.Sprintf("the given %s does not exist", subject)
	if subject == SubjectBoth {
		msg = "the given movie and room do not exist"
	}
	return &Error{Kind: KindNotFound, Subject: subject, Message: msg}
}

// AlreadyExists reports a catalog name collision.
func AlreadyExists(subject Subject) *Error {
	return &Error{Kind: KindAlreadyExists, Subject: subject, Message: fmt.Sprintf("the %s already exists", subject)}
}

// InUse reports that a catalog record is still referenced by screenings.
func InUse(subject Subject, message string) *Error {
	return &Error{Kind: KindInUse, Subject: subject, Message: message}
}

// Validation reports invalid input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Predefined errors.
var (
	ErrNotFound      = New(KindNotFound, "resource not found")
	ErrAlreadyExists = New(KindAlreadyExists, "resource already exists")
	ErrExtending     = New(KindExtending, "there is an overlapping screening")
	ErrBreakPeriod   = New(KindBreakPeriod, "this would start in the break period after another screening in this room")
	ErrInUse         = New(KindInUse, "resource is still referenced")
	ErrValidation    = New(KindValidation, "validation failed")
	ErrInvalidSlot   = New(KindValidation, "a screening must end after it starts")
	ErrUnauthorized  = New(KindUnauthorized, "unauthorized")
	ErrForbidden     = New(KindForbidden, "forbidden")
	ErrInternal      = New(KindInternal, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, KindInternal, ErrInternal.Message)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return FromError(err).Kind
}
