package apperror

import (
	"errors"
	"fmt"
)

// Kind buckets application errors so the HTTP layer can map them to a status
// code without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindUpstream
	KindInputFormat
)

// Error is the caller-facing application error. Message is always safe to
// return to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, optional
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports bad or missing input (wrong column, unsupported type,
// empty result set). Never fatal.
func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

// NotFound reports an unknown session id.
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// Upstream reports a failed or unusable reply from the suggestion generator.
func Upstream(format string, args ...interface{}) *Error {
	return newError(KindUpstream, format, args...)
}

// UpstreamWrap keeps the cause for logging while exposing a clean message.
func UpstreamWrap(err error, message string) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// InputFormat reports an unreadable or unsupported uploaded file.
func InputFormat(format string, args ...interface{}) *Error {
	return newError(KindInputFormat, format, args...)
}

// KindOf extracts the Kind from any error chain. Unwrapped errors report
// KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
