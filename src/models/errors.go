package models

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindBadRequest
	KindNotFound
	KindUnauthorized
)

// FieldError mirrors one entry of the {"errors": [...]} response body
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
}

// AppError is a failure the boundary layer knows how to render
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(fields ...FieldError) *AppError {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = fields[0].Msg
	}
	return &AppError{
		Kind:    KindValidation,
		Message: msg,
		Fields:  fields,
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "Internal server error.",
		Err:     err,
	}
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
