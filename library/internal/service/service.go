package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zllibrary/library-service/library/internal/errs"
	"github.com/zllibrary/library-service/library/internal/events"
	"github.com/zllibrary/library-service/library/internal/model"
	"github.com/zllibrary/library-service/library/internal/repository"
	"github.com/zllibrary/library-service/pkg/metrics"
)

const (
	DefaultMaxBorrowedBooks = 2
	DefaultLoanPeriod       = 14 * 24 * time.Hour
)

// Service is the transaction engine. Every mutating operation runs in one
// repository transaction and publishes a lending event after commit.
type Service struct {
	log         *zap.Logger
	repo        repository.Repository
	publisher   events.Publisher
	metrics     *metrics.Lending
	maxBorrowed int
	loanPeriod  time.Duration
	now         func() time.Time
}

type Option func(s *Service)

func WithMaxBorrowedBooks(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBorrowed = n
		}
	}
}

func WithDefaultLoanPeriod(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.loanPeriod = d
		}
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithMetrics(m *metrics.Lending) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock replaces time.Now, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo repository.Repository, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:         log.Named("engine"),
		repo:        repo,
		publisher:   events.NewNopPublisher(),
		maxBorrowed: DefaultMaxBorrowedBooks,
		loanPeriod:  DefaultLoanPeriod,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// observe records the outcome of one engine operation.
func (s *Service) observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = errs.KindOf(err)
		if outcome == "" {
			outcome = "error"
		}
	}
	s.metrics.Observe(op, outcome, time.Since(start))

	switch outcome {
	case "ok":
	case errs.KindStoreFailure, "error":
		s.log.Error(op, zap.Error(err), zap.Bool("retryable", errs.IsRetryable(err)))
	default:
		s.log.Debug(op+" rejected", zap.String("kind", outcome), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, action model.Action, t model.BookTransaction, actorID *int) {
	event := events.NewLendingEvent(action, t, actorID, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish lending event",
			zap.String("action", event.Action),
			zap.Int("transaction_id", t.ID),
			zap.Error(err))
	}
}
