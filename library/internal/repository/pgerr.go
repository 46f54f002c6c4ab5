package repository

import (
	"context"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/zllibrary/library-service/library/internal/errs"
)

const (
	activeBorrowIndex    = "book_transactions_active_uidx"
	availableCopiesCheck = "books_available_copies_check"
)

// storeError maps a driver error to the error taxonomy. Constraint violations that
// only a concurrent writer can cause are reported as the matching domain error.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if pgErr.ConstraintName == activeBorrowIndex {
				return errs.ErrDuplicateBorrow
			}
		case pgerrcode.CheckViolation:
			if pgErr.ConstraintName == availableCopiesCheck {
				return errs.ErrInsufficientCopies
			}
		case pgerrcode.SerializationFailure,
			pgerrcode.DeadlockDetected,
			pgerrcode.LockNotAvailable,
			pgerrcode.QueryCanceled:
			return &errs.StoreError{Op: op, Retryable: true, Err: err}
		}
	}

	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &errs.StoreError{Op: op, Retryable: true, Err: err}
	}
	return &errs.StoreError{Op: op, Err: err}
}

// passDomain keeps classified errors intact and maps everything else.
func passDomain(op string, err error) error {
	if errs.KindOf(err) != "" {
		return err
	}
	return storeError(op, err)
}
