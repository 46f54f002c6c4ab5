package errs

import (
	"errors"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientCopies  = errors.New("no copies of the book are available")
	ErrBorrowLimitExceeded = errors.New("resident has reached the borrowing limit")
	ErrDuplicateBorrow     = errors.New("resident already borrowed this book")
	ErrInvalidTransition   = errors.New("transaction is not in the required status")
	ErrInvalidInput        = errors.New("invalid input")
	ErrStoreFailure        = errors.New("store failure")
)

const (
	KindNotFound            = "NotFound"
	KindInsufficientCopies  = "InsufficientCopies"
	KindBorrowLimitExceeded = "BorrowLimitExceeded"
	KindDuplicateBorrow     = "DuplicateBorrow"
	KindInvalidTransition   = "InvalidTransition"
	KindInvalidInput        = "InvalidInput"
	KindStoreFailure        = "StoreFailure"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrNotFound, KindNotFound},
	{ErrInsufficientCopies, KindInsufficientCopies},
	{ErrBorrowLimitExceeded, KindBorrowLimitExceeded},
	{ErrDuplicateBorrow, KindDuplicateBorrow},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrInvalidInput, KindInvalidInput},
	{ErrStoreFailure, KindStoreFailure},
}

// KindOf returns the machine-readable kind of err, empty for unclassified errors.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}

// StoreError wraps a persistence failure. Retryable is set for lock, timeout and
// serialization conflicts.
type StoreError struct {
	Op        string
	Retryable bool
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + ErrStoreFailure.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

func IsRetryable(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Retryable
}

type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}
