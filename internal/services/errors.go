package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStore      = errors.New("store error")
)

// ServiceError is the single terminal error of a service call.
type ServiceError struct {
	Kind    error
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func validationError(msg string) error {
	return &ServiceError{Kind: ErrValidation, Message: msg}
}

func notFoundError(msg string) error {
	return &ServiceError{Kind: ErrNotFound, Message: msg}
}

func conflictError(msg string) error {
	return &ServiceError{Kind: ErrConflict, Message: msg}
}

func storeError(op string, err error) error {
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	return &ServiceError{Kind: ErrStore, Message: op, Err: err}
}

// lookupError maps a missing record to NotFound and anything else to a store error.
func lookupError(op, notFoundMsg string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundError(notFoundMsg)
	}
	return storeError(op, err)
}
