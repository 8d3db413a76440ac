package service

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ValidationError means caller input failed a precondition (bad token, wrong
// event, out-of-order timestamps).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError means a record had to exist and did not.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

// StorageError wraps a backing store failure. Op names the store call.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: pkgerrors.WithStack(err)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
