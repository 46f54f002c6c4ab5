package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/zllibrary/library-service/library/internal/errs"
	"github.com/zllibrary/library-service/library/internal/model"
	"github.com/zllibrary/library-service/library/internal/repository"
)

const (
	day = 24 * time.Hour

	// MaxDays bounds extra_days and report windows so day arithmetic stays
	// within time.Duration.
	MaxDays = 3650
)

// Borrow lends one copy of a book to a resident. Rows are locked resident first,
// then book, so concurrent borrows by one resident or of one title serialize.
func (s *Service) Borrow(ctx context.Context, req model.BorrowRequest, actorID *int) (created model.BookTransaction, err error) {
	start := time.Now()
	defer func() { s.observe("borrow", start, err) }()

	if req.BookID <= 0 || req.ResidentID <= 0 {
		return model.BookTransaction{}, errors.Wrap(errs.ErrInvalidInput, "book_id and resident_id are required")
	}
	now := s.now()
	due := now.Add(s.loanPeriod)
	if req.DueDate != nil {
		if !req.DueDate.After(now) {
			return model.BookTransaction{}, errors.Wrap(errs.ErrInvalidInput, "due_date must be in the future")
		}
		due = *req.DueDate
	}

	err = s.repo.WithinTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.LockResident(ctx, req.ResidentID); err != nil {
			return errors.Wrapf(err, "resident %d", req.ResidentID)
		}
		book, err := tx.LockBook(ctx, req.BookID)
		if err != nil {
			return errors.Wrapf(err, "book %d", req.BookID)
		}

		active, err := tx.CountActiveBorrows(ctx, req.ResidentID)
		if err != nil {
			return err
		}
		if active >= s.maxBorrowed {
			return errors.Wrapf(errs.ErrBorrowLimitExceeded, "max %d books", s.maxBorrowed)
		}
		dup, err := tx.HasActiveBorrow(ctx, book.ID, req.ResidentID)
		if err != nil {
			return err
		}
		if dup {
			return errors.Wrapf(errs.ErrDuplicateBorrow, "book %d", book.ID)
		}
		if book.AvailableCopies <= 0 {
			return errors.Wrapf(errs.ErrInsufficientCopies, "book %d", book.ID)
		}

		created, err = tx.CreateTransaction(ctx, model.BookTransaction{
			BookID:     book.ID,
			ResidentID: req.ResidentID,
			Status:     model.StatusBorrowed,
			DueDate:    due,
			Notes:      req.Notes,
		})
		if err != nil {
			return err
		}
		if _, err = (copyLedger{tx: tx}).decrement(ctx, book.ID); err != nil {
			return err
		}
		return auditTrail{tx: tx, now: s.now}.append(ctx, created.ID, model.ActionBorrow, actorID, nil)
	})
	if err != nil {
		return model.BookTransaction{}, err
	}

	s.publish(ctx, model.ActionBorrow, created, actorID)
	return created, nil
}

// Return closes a borrowed transaction and puts the copy back into circulation.
func (s *Service) Return(ctx context.Context, transactionID int, actorID *int) (saved model.BookTransaction, err error) {
	start := time.Now()
	defer func() { s.observe("return", start, err) }()

	err = s.repo.WithinTx(ctx, func(tx repository.Tx) error {
		t, err := lockForTransition(ctx, tx, transactionID, model.StatusReturned)
		if err != nil {
			return err
		}
		returned := s.now()
		t.Status = model.StatusReturned
		t.ReturnedDate = &returned

		if saved, err = tx.SaveTransaction(ctx, t); err != nil {
			return err
		}
		if _, err = (copyLedger{tx: tx}).increment(ctx, t.BookID); err != nil {
			return err
		}
		return auditTrail{tx: tx, now: s.now}.append(ctx, t.ID, model.ActionReturn, actorID, nil)
	})
	if err != nil {
		return model.BookTransaction{}, err
	}

	s.publish(ctx, model.ActionReturn, saved, actorID)
	return saved, nil
}

// ReportLost closes a borrowed transaction as lost. The copy stays out of
// circulation, available_copies is not restored.
func (s *Service) ReportLost(ctx context.Context, transactionID int, actorID *int, declaration string) (saved model.BookTransaction, err error) {
	start := time.Now()
	defer func() { s.observe("lost", start, err) }()

	err = s.repo.WithinTx(ctx, func(tx repository.Tx) error {
		t, err := lockForTransition(ctx, tx, transactionID, model.StatusLost)
		if err != nil {
			return err
		}
		t.Status = model.StatusLost
		t.HandledBy = actorID

		if saved, err = tx.SaveTransaction(ctx, t); err != nil {
			return err
		}
		return auditTrail{tx: tx, now: s.now}.append(ctx, t.ID, model.ActionLost, actorID, optional(declaration))
	})
	if err != nil {
		return model.BookTransaction{}, err
	}

	s.publish(ctx, model.ActionLost, saved, actorID)
	return saved, nil
}

// Extend moves the due date of a borrowed transaction by whole days.
func (s *Service) Extend(ctx context.Context, transactionID, extraDays int, actorID *int) (saved model.BookTransaction, err error) {
	start := time.Now()
	defer func() { s.observe("extend", start, err) }()

	if extraDays < 1 || extraDays > MaxDays {
		return model.BookTransaction{}, errors.Wrapf(errs.ErrInvalidInput, "extra_days must be between 1 and %d", MaxDays)
	}

	err = s.repo.WithinTx(ctx, func(tx repository.Tx) error {
		t, err := tx.LockTransaction(ctx, transactionID)
		if err != nil {
			return errors.Wrapf(err, "transaction %d", transactionID)
		}
		if !t.Status.CanExtend() {
			return errors.Wrapf(errs.ErrInvalidTransition, "transaction %d is %s", t.ID, t.Status)
		}
		t.DueDate = t.DueDate.Add(time.Duration(extraDays) * day)

		if saved, err = tx.SaveTransaction(ctx, t); err != nil {
			return err
		}
		return auditTrail{tx: tx, now: s.now}.append(ctx, t.ID, model.ActionExtend, actorID, extendNote(extraDays))
	})
	if err != nil {
		return model.BookTransaction{}, err
	}

	s.publish(ctx, model.ActionExtend, saved, actorID)
	return saved, nil
}

func lockForTransition(ctx context.Context, tx repository.Tx, transactionID int, next model.Status) (model.BookTransaction, error) {
	t, err := tx.LockTransaction(ctx, transactionID)
	if err != nil {
		return model.BookTransaction{}, errors.Wrapf(err, "transaction %d", transactionID)
	}
	if !t.Status.CanTransitionTo(next) {
		return model.BookTransaction{}, errors.Wrapf(errs.ErrInvalidTransition, "transaction %d is %s", t.ID, t.Status)
	}
	return t, nil
}
