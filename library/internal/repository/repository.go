package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zllibrary/library-service/library/internal/model"
)

type Repository interface {
	// WithinTx runs fn in one database transaction, rolled back when fn fails.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error

	GetTransaction(ctx context.Context, id int) (model.BookTransaction, error)
	ListTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.BookTransaction, int, error)
	ListMetadata(ctx context.Context, transactionID int) ([]model.TransactionMetadata, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	GetResident(ctx context.Context, id int) (model.Resident, error)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type repository struct {
	db          *pgxpool.Pool
	log         *zap.Logger
	txTimeout   time.Duration
	lockTimeout time.Duration
}

type Option func(r *repository)

func WithTxTimeout(d time.Duration) Option {
	return func(r *repository) {
		r.txTimeout = d
	}
}

func WithLockTimeout(d time.Duration) Option {
	return func(r *repository) {
		r.lockTimeout = d
	}
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger, opts ...Option) (*repository, error) {
	r := &repository{
		db:          db,
		log:         log.Named("repo"),
		txTimeout:   5 * time.Second,
		lockTimeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.txTimeout <= 0 || r.lockTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be positive: tx=%s lock=%s", r.txTimeout, r.lockTimeout)
	}
	return r, nil
}

const (
	booksTableName        = `books`
	residentsTableName    = `residents`
	transactionsTableName = `book_transactions`
	metadataTableName     = `transaction_metadata`
)

var (
	bookColumns = []string{
		"book_id", "title", "author", "isbn", "published_year",
		"description", "image_url", "specialty_id", "available_copies",
	}
	residentColumns = []string{
		"resident_id", "first_name", "last_name", "user_id", "specialty_id", "grade",
	}
	transactionColumns = []string{
		"transaction_id", "book_id", "resident_id", "status_id", "due_date",
		"returned_date", "notes", "handled_by", "created_at",
	}
	metadataColumns = []string{
		"metadata_id", "transaction_id", "action", "action_by", "action_at", "notes",
	}
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

func (r *repository) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, r.txTimeout)
	defer cancel()

	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`select set_config('lock_timeout', $1, true), set_config('statement_timeout', $2, true)`,
			millis(r.lockTimeout), millis(r.txTimeout))
		if err != nil {
			return storeError("set timeouts", err)
		}
		return fn(&txRepository{tx: tx, log: r.log})
	})
	if err != nil {
		return passDomain("tx", err)
	}
	return nil
}

func (r *repository) GetTransaction(ctx context.Context, id int) (model.BookTransaction, error) {
	return getTransaction(ctx, r.db, id, false)
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	return getBook(ctx, r.db, id, false)
}

func (r *repository) GetResident(ctx context.Context, id int) (model.Resident, error) {
	return getResident(ctx, r.db, id, false)
}

func (r *repository) ListTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.BookTransaction, int, error) {
	filter.Normalize()

	where := sq.And{}
	if filter.ResidentID != nil {
		where = append(where, sq.Eq{"resident_id": *filter.ResidentID})
	}
	if filter.BookID != nil {
		where = append(where, sq.Eq{"book_id": *filter.BookID})
	}
	if filter.Status != nil {
		where = append(where, sq.Eq{"status_id": int16(*filter.Status)})
	}

	countQuery, countArgs, err := qb.Select("count(*)").
		From(transactionsTableName).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err = r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, storeError("count transactions", err)
	}

	query, args, err := qb.Select(transactionColumns...).
		From(transactionsTableName).
		Where(where).
		OrderBy("transaction_id desc").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	r.log.Debug("ListTransactions", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storeError("list transactions", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.BookTransaction])
	if err != nil {
		return nil, 0, storeError("list transactions", err)
	}
	return items, total, nil
}

func (r *repository) ListMetadata(ctx context.Context, transactionID int) ([]model.TransactionMetadata, error) {
	query, args, err := qb.Select(metadataColumns...).
		From(metadataTableName).
		Where(sq.Eq{"transaction_id": transactionID}).
		OrderBy("action_at desc", "metadata_id desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list metadata", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.TransactionMetadata])
	if err != nil {
		return nil, storeError("list metadata", err)
	}
	return items, nil
}

func getBook(ctx context.Context, q querier, id int, forUpdate bool) (model.Book, error) {
	b := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"book_id": id})
	if forUpdate {
		b = b.Suffix("for update")
	}
	return collectOne[model.Book](ctx, q, "get book", b)
}

func getResident(ctx context.Context, q querier, id int, forUpdate bool) (model.Resident, error) {
	b := qb.Select(residentColumns...).
		From(residentsTableName).
		Where(sq.Eq{"resident_id": id})
	if forUpdate {
		b = b.Suffix("for update")
	}
	return collectOne[model.Resident](ctx, q, "get resident", b)
}

func getTransaction(ctx context.Context, q querier, id int, forUpdate bool) (model.BookTransaction, error) {
	b := qb.Select(transactionColumns...).
		From(transactionsTableName).
		Where(sq.Eq{"transaction_id": id})
	if forUpdate {
		b = b.Suffix("for update")
	}
	return collectOne[model.BookTransaction](ctx, q, "get transaction", b)
}

func collectOne[T any](ctx context.Context, q querier, op string, b sq.Sqlizer) (T, error) {
	var zero T
	query, args, err := b.ToSql()
	if err != nil {
		return zero, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return zero, storeError(op, err)
	}
	defer rows.Close()

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, storeError(op, err)
	}
	return item, nil
}
