package facility

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind classifies pipeline errors.
type ErrorKind string

const (
	KindMissingField ErrorKind = "missing_field"
	KindValidation   ErrorKind = "validation"
	KindLoad         ErrorKind = "load"
	KindProfile      ErrorKind = "profile"
	KindInternal     ErrorKind = "internal"
)

// ErrMissingField is wrapped by every missing-column error.
var ErrMissingField = errors.New("missing required field")

// Error wraps a pipeline failure with its kind and, when relevant, the field.
type Error struct {
	Kind  ErrorKind
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new pipeline error.
func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func missingField(stage, field string) *Error {
	return &Error{
		Kind:  KindMissingField,
		Field: field,
		Msg:   fmt.Sprintf("%s: field %q", stage, field),
		Err:   ErrMissingField,
	}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// AsGoError maps an error into a go-errors error for structured reporting.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	msg := err.Error()
	switch KindOf(err) {
	case KindMissingField:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("missing_field")
	case KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("validation")
	case KindProfile:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode("profile")
	case KindLoad:
		if errors.Is(err, fs.ErrNotExist) {
			return errorslib.New(msg, errorslib.CategoryNotFound).WithTextCode("not_found")
		}
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("load")
	}
	if errors.Is(err, context.Canceled) {
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	}
	return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
}
