// Package errs holds the domain errors the use-case services return and the
// HTTP adapter maps onto status codes.
package errs

import (
	"errors"
	"fmt"
)

// NotFoundError reports that an identifier did not resolve to a stored
// entity. It is also used when a create references a missing owner.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// NotFound returns a *NotFoundError for the given entity kind.
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// CreationRejectedError reports that the store did not produce a record.
type CreationRejectedError struct {
	Entity string
	Err    error
}

func (e *CreationRejectedError) Error() string {
	if e.Err == nil {
		return e.Entity + " could not be created"
	}
	return fmt.Sprintf("%s could not be created: %v", e.Entity, e.Err)
}

func (e *CreationRejectedError) Unwrap() error {
	return e.Err
}

// CreationRejected returns a *CreationRejectedError wrapping cause (which may be nil).
func CreationRejected(entity string, cause error) error {
	return &CreationRejectedError{Entity: entity, Err: cause}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsCreationRejected(err error) bool {
	var cr *CreationRejectedError
	return errors.As(err, &cr)
}
