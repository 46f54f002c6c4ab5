package repository

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zllibrary/library-service/library/internal/model"
)

// Stats holds the read-only aggregation queries behind the reporting views.
type Stats interface {
	MostBorrowed(ctx context.Context, limit int) ([]model.BookBorrowCount, error)
	// RecentlyBorrowedBooks returns the book of each transaction, newest transaction first.
	RecentlyBorrowedBooks(ctx context.Context, offset, limit int) ([]model.Book, error)
	ActiveBorrows(ctx context.Context) ([]model.ActiveBorrow, error)
	ResidentHistory(ctx context.Context, residentID int) ([]model.BookTransaction, error)
	// ResidentsBorrowedSince returns the resident of each borrow audit entry, newest first.
	ResidentsBorrowedSince(ctx context.Context, since time.Time) ([]model.Resident, error)
	AvailableBooks(ctx context.Context) ([]model.Book, error)
	MostActiveResidents(ctx context.Context, limit int) ([]model.ResidentActivity, error)
}

type stats struct {
	db      *pgxpool.Pool
	log     *zap.Logger
	dialect goqu.DialectWrapper
}

func NewStats(db *pgxpool.Pool, log *zap.Logger) *stats {
	return &stats{
		db:      db,
		log:     log.Named("stats"),
		dialect: goqu.Dialect("postgres"),
	}
}

func columns(alias string, names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = goqu.I(alias + "." + n)
	}
	return out
}

func (s *stats) MostBorrowed(ctx context.Context, limit int) ([]model.BookBorrowCount, error) {
	ds := s.dialect.From(goqu.T(transactionsTableName).As("t")).
		Join(goqu.T(booksTableName).As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("t.book_id")))).
		Select(
			goqu.I("b.book_id"),
			goqu.I("b.title"),
			goqu.I("b.author"),
			goqu.COUNT(goqu.I("t.transaction_id")).As("borrow_count"),
		).
		GroupBy(goqu.I("b.book_id"), goqu.I("b.title"), goqu.I("b.author")).
		Order(goqu.I("borrow_count").Desc(), goqu.I("b.book_id").Asc()).
		Limit(uint(limit))
	return collect[model.BookBorrowCount](ctx, s, "most borrowed", ds)
}

func (s *stats) RecentlyBorrowedBooks(ctx context.Context, offset, limit int) ([]model.Book, error) {
	ds := s.dialect.From(goqu.T(transactionsTableName).As("t")).
		Join(goqu.T(booksTableName).As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("t.book_id")))).
		Select(columns("b", bookColumns)...).
		Order(goqu.I("t.transaction_id").Desc()).
		Offset(uint(offset)).
		Limit(uint(limit))
	return collect[model.Book](ctx, s, "recently borrowed books", ds)
}

func (s *stats) ActiveBorrows(ctx context.Context) ([]model.ActiveBorrow, error) {
	cols := append(columns("t", transactionColumns),
		goqu.I("b.title").As("book_title"),
		goqu.I("r.first_name"),
		goqu.I("r.last_name"),
	)
	ds := s.dialect.From(goqu.T(transactionsTableName).As("t")).
		Join(goqu.T(booksTableName).As("b"), goqu.On(goqu.I("b.book_id").Eq(goqu.I("t.book_id")))).
		Join(goqu.T(residentsTableName).As("r"), goqu.On(goqu.I("r.resident_id").Eq(goqu.I("t.resident_id")))).
		Select(cols...).
		Where(goqu.I("t.status_id").Eq(int16(model.StatusBorrowed))).
		Order(goqu.I("t.due_date").Asc(), goqu.I("t.transaction_id").Asc())
	return collect[model.ActiveBorrow](ctx, s, "active borrows", ds)
}

func (s *stats) ResidentHistory(ctx context.Context, residentID int) ([]model.BookTransaction, error) {
	ds := s.dialect.From(transactionsTableName).
		Select(columns(transactionsTableName, transactionColumns)...).
		Where(goqu.C("resident_id").Eq(residentID)).
		Order(goqu.C("created_at").Desc(), goqu.C("transaction_id").Desc())
	return collect[model.BookTransaction](ctx, s, "resident history", ds)
}

func (s *stats) ResidentsBorrowedSince(ctx context.Context, since time.Time) ([]model.Resident, error) {
	ds := s.dialect.From(goqu.T(metadataTableName).As("m")).
		Join(goqu.T(transactionsTableName).As("t"), goqu.On(goqu.I("t.transaction_id").Eq(goqu.I("m.transaction_id")))).
		Join(goqu.T(residentsTableName).As("r"), goqu.On(goqu.I("r.resident_id").Eq(goqu.I("t.resident_id")))).
		Select(columns("r", residentColumns)...).
		Where(
			goqu.I("m.action").Eq(int16(model.ActionBorrow)),
			goqu.I("m.action_at").Gte(since),
		).
		Order(goqu.I("m.action_at").Desc(), goqu.I("m.metadata_id").Desc())
	return collect[model.Resident](ctx, s, "residents borrowed since", ds)
}

func (s *stats) AvailableBooks(ctx context.Context) ([]model.Book, error) {
	ds := s.dialect.From(booksTableName).
		Select(columns(booksTableName, bookColumns)...).
		Where(goqu.C("available_copies").Gt(0)).
		Order(goqu.C("title").Asc(), goqu.C("book_id").Asc())
	return collect[model.Book](ctx, s, "available books", ds)
}

func (s *stats) MostActiveResidents(ctx context.Context, limit int) ([]model.ResidentActivity, error) {
	ds := s.dialect.From(goqu.T(transactionsTableName).As("t")).
		Join(goqu.T(residentsTableName).As("r"), goqu.On(goqu.I("r.resident_id").Eq(goqu.I("t.resident_id")))).
		Select(
			goqu.I("r.resident_id"),
			goqu.I("r.first_name"),
			goqu.I("r.last_name"),
			goqu.COUNT(goqu.I("t.transaction_id")).As("transaction_count"),
		).
		GroupBy(goqu.I("r.resident_id"), goqu.I("r.first_name"), goqu.I("r.last_name")).
		Order(goqu.I("transaction_count").Desc(), goqu.I("r.resident_id").Asc()).
		Limit(uint(limit))
	return collect[model.ResidentActivity](ctx, s, "most active residents", ds)
}

func collect[T any](ctx context.Context, s *stats, op string, ds *goqu.SelectDataset) ([]T, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	s.log.Debug(op, zap.String("query", query), zap.Any("args", args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, storeError(op, err)
	}
	return items, nil
}
