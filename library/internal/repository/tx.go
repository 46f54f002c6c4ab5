package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zllibrary/library-service/library/internal/errs"
	"github.com/zllibrary/library-service/library/internal/model"
)

// Tx is the set of reads and writes the transaction engine performs inside one
// database transaction. Lock* methods take a row lock held until commit.
type Tx interface {
	LockResident(ctx context.Context, id int) (model.Resident, error)
	LockBook(ctx context.Context, id int) (model.Book, error)
	LockTransaction(ctx context.Context, id int) (model.BookTransaction, error)

	CountActiveBorrows(ctx context.Context, residentID int) (int, error)
	HasActiveBorrow(ctx context.Context, bookID, residentID int) (bool, error)

	CreateTransaction(ctx context.Context, t model.BookTransaction) (model.BookTransaction, error)
	SaveTransaction(ctx context.Context, t model.BookTransaction) (model.BookTransaction, error)
	// AdjustCopies adds delta to available_copies and returns the new count.
	AdjustCopies(ctx context.Context, bookID, delta int) (int, error)
	AppendMetadata(ctx context.Context, m model.TransactionMetadata) (model.TransactionMetadata, error)
}

type txRepository struct {
	tx  pgx.Tx
	log *zap.Logger
}

func (r *txRepository) LockResident(ctx context.Context, id int) (model.Resident, error) {
	return getResident(ctx, r.tx, id, true)
}

func (r *txRepository) LockBook(ctx context.Context, id int) (model.Book, error) {
	return getBook(ctx, r.tx, id, true)
}

func (r *txRepository) LockTransaction(ctx context.Context, id int) (model.BookTransaction, error) {
	return getTransaction(ctx, r.tx, id, true)
}

func (r *txRepository) CountActiveBorrows(ctx context.Context, residentID int) (int, error) {
	query, args, err := qb.Select("count(*)").
		From(transactionsTableName).
		Where(sq.Eq{"resident_id": residentID, "status_id": int16(model.StatusBorrowed)}).
		ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err = r.tx.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, storeError("count active borrows", err)
	}
	return n, nil
}

func (r *txRepository) HasActiveBorrow(ctx context.Context, bookID, residentID int) (bool, error) {
	query, args, err := qb.Select("count(*) > 0").
		From(transactionsTableName).
		Where(sq.Eq{
			"book_id":     bookID,
			"resident_id": residentID,
			"status_id":   int16(model.StatusBorrowed),
		}).
		ToSql()
	if err != nil {
		return false, err
	}
	var exists bool
	if err = r.tx.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, storeError("has active borrow", err)
	}
	return exists, nil
}

func (r *txRepository) CreateTransaction(ctx context.Context, t model.BookTransaction) (model.BookTransaction, error) {
	b := qb.Insert(transactionsTableName).
		Columns("book_id", "resident_id", "status_id", "due_date", "notes").
		Values(t.BookID, t.ResidentID, int16(t.Status), t.DueDate, t.Notes).
		Suffix("returning " + strings.Join(transactionColumns, ", "))
	created, err := collectOne[model.BookTransaction](ctx, r.tx, "create transaction", b)
	if err != nil {
		return model.BookTransaction{}, err
	}
	r.log.Debug("transaction created",
		zap.Int("transaction_id", created.ID),
		zap.Int("book_id", created.BookID),
		zap.Int("resident_id", created.ResidentID))
	return created, nil
}

func (r *txRepository) SaveTransaction(ctx context.Context, t model.BookTransaction) (model.BookTransaction, error) {
	b := qb.Update(transactionsTableName).
		SetMap(map[string]any{
			"status_id":     int16(t.Status),
			"due_date":      t.DueDate,
			"returned_date": t.ReturnedDate,
			"notes":         t.Notes,
			"handled_by":    t.HandledBy,
		}).
		Where(sq.Eq{"transaction_id": t.ID}).
		Suffix("returning " + strings.Join(transactionColumns, ", "))
	return collectOne[model.BookTransaction](ctx, r.tx, "save transaction", b)
}

func (r *txRepository) AdjustCopies(ctx context.Context, bookID, delta int) (int, error) {
	query, args, err := qb.Update(booksTableName).
		Set("available_copies", sq.Expr("available_copies + ?", delta)).
		Where(sq.Eq{"book_id": bookID}).
		Where(sq.Expr("available_copies + ? >= 0", delta)).
		Suffix("returning available_copies").
		ToSql()
	if err != nil {
		return 0, err
	}
	var copies int
	if err = r.tx.QueryRow(ctx, query, args...).Scan(&copies); err != nil {
		err = storeError("adjust copies", err)
		if errors.Is(err, errs.ErrNotFound) {
			// the book row is locked by the caller, so no row means the guard rejected it
			return 0, errs.ErrInsufficientCopies
		}
		return 0, err
	}
	return copies, nil
}

func (r *txRepository) AppendMetadata(ctx context.Context, m model.TransactionMetadata) (model.TransactionMetadata, error) {
	b := qb.Insert(metadataTableName).
		Columns("transaction_id", "action", "action_by", "action_at", "notes").
		Values(m.TransactionID, int16(m.Action), m.ActionBy, m.ActionAt, m.Notes).
		Suffix("returning " + strings.Join(metadataColumns, ", "))
	return collectOne[model.TransactionMetadata](ctx, r.tx, "append metadata", b)
}
