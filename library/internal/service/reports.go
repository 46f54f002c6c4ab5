package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/zllibrary/library-service/library/internal/errs"
	"github.com/zllibrary/library-service/library/internal/model"
	"github.com/zllibrary/library-service/library/internal/repository"
)

const (
	topN                    = 10
	recentPageSize          = 50
	DefaultActiveWindowDays = 30
)

// Reports serves the read-only views. It never takes locks.
type Reports struct {
	log        *zap.Logger
	stats      repository.Stats
	repo       repository.Repository
	windowDays int
	now        func() time.Time
}

type ReportsOption func(r *Reports)

func WithActiveWindowDays(days int) ReportsOption {
	return func(r *Reports) {
		if days > 0 && days <= MaxDays {
			r.windowDays = days
		}
	}
}

func WithReportsClock(now func() time.Time) ReportsOption {
	return func(r *Reports) {
		r.now = now
	}
}

func NewReports(stats repository.Stats, repo repository.Repository, log *zap.Logger, opts ...ReportsOption) *Reports {
	r := &Reports{
		log:        log.Named("reports"),
		stats:      stats,
		repo:       repo,
		windowDays: DefaultActiveWindowDays,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reports) MostBorrowed(ctx context.Context) ([]model.BookBorrowCount, error) {
	items, err := r.stats.MostBorrowed(ctx, topN)
	return orEmpty(items), err
}

// LastBorrowed walks transactions newest first and keeps the first occurrence
// of each book until topN distinct books are found.
func (r *Reports) LastBorrowed(ctx context.Context) ([]model.Book, error) {
	seen := newOrderedSet[int]()
	books := make([]model.Book, 0, topN)
	for offset := 0; seen.Len() < topN; offset += recentPageSize {
		page, err := r.stats.RecentlyBorrowedBooks(ctx, offset, recentPageSize)
		if err != nil {
			return nil, err
		}
		for _, b := range page {
			if seen.Add(b.ID) {
				books = append(books, b)
				if seen.Len() == topN {
					break
				}
			}
		}
		if len(page) < recentPageSize {
			break
		}
	}
	return books, nil
}

func (r *Reports) ActiveBorrows(ctx context.Context) ([]model.ActiveBorrow, error) {
	items, err := r.stats.ActiveBorrows(ctx)
	return orEmpty(items), err
}

func (r *Reports) BorrowHistory(ctx context.Context, residentID int) ([]model.BookTransaction, error) {
	if _, err := r.repo.GetResident(ctx, residentID); err != nil {
		return nil, errors.Wrapf(err, "resident %d", residentID)
	}
	items, err := r.stats.ResidentHistory(ctx, residentID)
	return orEmpty(items), err
}

// ActiveResidents lists residents with a borrow recorded in the trailing window,
// most recent borrower first. A nil days uses the configured window.
func (r *Reports) ActiveResidents(ctx context.Context, days *int) ([]model.Resident, error) {
	window := r.windowDays
	if days != nil {
		if *days < 1 || *days > MaxDays {
			return nil, errors.Wrapf(errs.ErrInvalidInput, "days must be between 1 and %d", MaxDays)
		}
		window = *days
	}
	since := r.now().Add(-time.Duration(window) * day)

	entries, err := r.stats.ResidentsBorrowedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	seen := newOrderedSet[int]()
	residents := make([]model.Resident, 0, len(entries))
	for _, res := range entries {
		if seen.Add(res.ID) {
			residents = append(residents, res)
		}
	}
	r.log.Debug("active residents", zap.Int("window_days", window), zap.Int("count", len(residents)))
	return residents, nil
}

func (r *Reports) AvailableBooks(ctx context.Context) ([]model.Book, error) {
	items, err := r.stats.AvailableBooks(ctx)
	return orEmpty(items), err
}

func (r *Reports) MostActiveResidents(ctx context.Context) ([]model.ResidentActivity, error) {
	items, err := r.stats.MostActiveResidents(ctx, topN)
	return orEmpty(items), err
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
