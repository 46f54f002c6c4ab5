package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zllibrary/library-service/library/internal/errs"
	"github.com/zllibrary/library-service/library/internal/model"
	"github.com/zllibrary/library-service/library/internal/service"
	"github.com/zllibrary/library-service/pkg/kafka"
	"github.com/zllibrary/library-service/pkg/metrics"
)

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.LendingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e kafka.LendingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

func newEngine(t *testing.T, opts ...service.Option) (*service.Service, *memStore, *recordingPublisher) {
	t.Helper()
	store := newMemStore(func() time.Time { return testNow })
	pub := &recordingPublisher{}
	opts = append([]service.Option{
		service.WithClock(func() time.Time { return testNow }),
		service.WithPublisher(pub),
	}, opts...)
	return service.NewService(store, zap.NewNop(), opts...), store, pub
}

func actor(id int) *int { return &id }

func TestService_BorrowReturnScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, pub := newEngine(t)
	store.addBook(1, 1, "Dune")
	store.addResident(5, "Ann")

	due := testNow.Add(14 * 24 * time.Hour)
	tr, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5, DueDate: &due}, actor(7))
	require.NoError(t, err)
	require.Equal(t, model.StatusBorrowed, tr.Status)
	require.Equal(t, due, tr.DueDate)
	require.Equal(t, 0, store.copies(1))

	_, err = svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5}, actor(7))
	require.ErrorIs(t, err, errs.ErrDuplicateBorrow)
	require.Equal(t, 0, store.copies(1))

	returned, err := svc.Return(ctx, tr.ID, actor(7))
	require.NoError(t, err)
	require.Equal(t, model.StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnedDate)
	require.Equal(t, testNow, *returned.ReturnedDate)
	require.Equal(t, 1, store.copies(1))

	_, err = svc.Return(ctx, tr.ID, actor(7))
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	require.Equal(t, 1, store.copies(1))

	history := store.history(tr.ID)
	require.Len(t, history, 2)
	require.Equal(t, model.ActionBorrow, history[0].Action)
	require.Equal(t, model.ActionReturn, history[1].Action)
	require.Equal(t, 7, *history[0].ActionBy)

	require.Equal(t, []string{"borrow", "return"}, pub.actions())
}

func TestService_BorrowLimitExceeded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newEngine(t)
	for id := 1; id <= 9; id++ {
		store.addBook(id, 3, "book")
	}
	store.addResident(5, "Ann")

	for _, bookID := range []int{1, 2} {
		_, err := svc.Borrow(ctx, model.BorrowRequest{BookID: bookID, ResidentID: 5}, actor(1))
		require.NoError(t, err)
	}

	_, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 9, ResidentID: 5}, actor(1))
	require.ErrorIs(t, err, errs.ErrBorrowLimitExceeded)
	require.Equal(t, 3, store.copies(9))
	require.Equal(t, 2, store.transactionCount())
}

func TestService_BorrowAtLimitOfHeldTitle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newEngine(t)
	store.addBook(1, 3, "Dune")
	store.addBook(2, 3, "Emma")
	store.addResident(5, "Ann")

	for _, bookID := range []int{1, 2} {
		_, err := svc.Borrow(ctx, model.BorrowRequest{BookID: bookID, ResidentID: 5}, nil)
		require.NoError(t, err)
	}

	_, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5}, nil)
	require.ErrorIs(t, err, errs.ErrBorrowLimitExceeded)
	require.Equal(t, 2, store.copies(1))
}

func TestService_BorrowLimitIsConfigurable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newEngine(t, service.WithMaxBorrowedBooks(3))
	for id := 1; id <= 4; id++ {
		store.addBook(id, 1, "book")
	}
	store.addResident(5, "Ann")

	for _, bookID := range []int{1, 2, 3} {
		_, err := svc.Borrow(ctx, model.BorrowRequest{BookID: bookID, ResidentID: 5}, nil)
		require.NoError(t, err)
	}
	_, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 4, ResidentID: 5}, nil)
	require.ErrorIs(t, err, errs.ErrBorrowLimitExceeded)
}

func TestService_BorrowPreconditions(t *testing.T) {
	t.Parallel()
	past := testNow.Add(-time.Hour)
	tests := []struct {
		name    string
		req     model.BorrowRequest
		wantErr error
	}{
		{
			name:    "book not found",
			req:     model.BorrowRequest{BookID: 404, ResidentID: 5},
			wantErr: errs.ErrNotFound,
		},
		{
			name:    "resident not found",
			req:     model.BorrowRequest{BookID: 1, ResidentID: 404},
			wantErr: errs.ErrNotFound,
		},
		{
			name:    "no copies",
			req:     model.BorrowRequest{BookID: 2, ResidentID: 5},
			wantErr: errs.ErrInsufficientCopies,
		},
		{
			name:    "due date in the past",
			req:     model.BorrowRequest{BookID: 1, ResidentID: 5, DueDate: &past},
			wantErr: errs.ErrInvalidInput,
		},
		{
			name:    "missing ids",
			req:     model.BorrowRequest{},
			wantErr: errs.ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, store, pub := newEngine(t)
			store.addBook(1, 1, "Dune")
			store.addBook(2, 0, "Emma")
			store.addResident(5, "Ann")

			_, err := svc.Borrow(context.Background(), tt.req, actor(1))
			require.ErrorIs(t, err, tt.wantErr)
			require.Equal(t, 0, store.transactionCount())
			require.Equal(t, 1, store.copies(1))
			require.Empty(t, pub.actions())
		})
	}
}

func TestService_BorrowDefaultDueDate(t *testing.T) {
	t.Parallel()
	svc, store, _ := newEngine(t, service.WithDefaultLoanPeriod(7*24*time.Hour))
	store.addBook(1, 1, "Dune")
	store.addResident(5, "Ann")

	tr, err := svc.Borrow(context.Background(), model.BorrowRequest{BookID: 1, ResidentID: 5}, nil)
	require.NoError(t, err)
	require.Equal(t, testNow.Add(7*24*time.Hour), tr.DueDate)
	require.Nil(t, store.history(tr.ID)[0].ActionBy)
}

func TestService_BorrowIsAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("ledger failure", func(t *testing.T) {
		svc, store, pub := newEngine(t)
		store.addBook(1, 1, "Dune")
		store.addResident(5, "Ann")
		store.failAdjust = &errs.StoreError{Op: "adjust copies", Retryable: true, Err: context.DeadlineExceeded}

		_, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5}, actor(1))
		require.ErrorIs(t, err, errs.ErrStoreFailure)
		require.True(t, errs.IsRetryable(err))
		require.Equal(t, 0, store.transactionCount())
		require.Equal(t, 1, store.copies(1))
		require.Empty(t, pub.actions())
	})

	t.Run("audit failure", func(t *testing.T) {
		svc, store, _ := newEngine(t)
		store.addBook(1, 1, "Dune")
		store.addResident(5, "Ann")
		store.failAppend = &errs.StoreError{Op: "append metadata", Err: errors.New("disk full")}

		_, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5}, actor(1))
		require.ErrorIs(t, err, errs.ErrStoreFailure)
		require.False(t, errs.IsRetryable(err))
		require.Equal(t, 0, store.transactionCount())
		require.Equal(t, 1, store.copies(1))
	})
}

func TestService_ReportLost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, pub := newEngine(t)
	store.addBook(1, 2, "Dune")
	store.addResident(5, "Ann")

	tr, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5}, actor(3))
	require.NoError(t, err)
	require.Equal(t, 1, store.copies(1))

	lost, err := svc.ReportLost(ctx, tr.ID, actor(4), "left on the bus")
	require.NoError(t, err)
	require.Equal(t, model.StatusLost, lost.Status)
	require.Equal(t, 4, *lost.HandledBy)
	require.Equal(t, 1, store.copies(1))

	history := store.history(tr.ID)
	require.Len(t, history, 2)
	require.Equal(t, model.ActionLost, history[1].Action)
	require.Equal(t, "left on the bus", *history[1].Notes)

	_, err = svc.ReportLost(ctx, tr.ID, actor(4), "")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	_, err = svc.Return(ctx, tr.ID, actor(4))
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	_, err = svc.Extend(ctx, tr.ID, 3, actor(4))
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	require.Equal(t, 1, store.copies(1))
	require.Len(t, store.history(tr.ID), 2)
	require.Equal(t, []string{"borrow", "lost"}, pub.actions())
}

func TestService_Extend(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newEngine(t)
	store.addBook(1, 1, "Dune")
	store.addResident(5, "Ann")

	tr, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5}, actor(1))
	require.NoError(t, err)

	for _, days := range []int{0, -2, service.MaxDays + 1, 200000} {
		_, err = svc.Extend(ctx, tr.ID, days, actor(1))
		require.ErrorIs(t, err, errs.ErrInvalidInput)
	}
	require.Len(t, store.history(tr.ID), 1)

	extended, err := svc.Extend(ctx, tr.ID, 3, actor(1))
	require.NoError(t, err)
	require.Equal(t, int64(3*86400), int64(extended.DueDate.Sub(tr.DueDate).Seconds()))
	require.Equal(t, model.StatusBorrowed, extended.Status)
	require.Equal(t, 0, store.copies(1))

	history := store.history(tr.ID)
	require.Len(t, history, 2)
	require.Equal(t, model.ActionExtend, history[1].Action)
	require.Equal(t, "Extended by 3 days", *history[1].Notes)

	_, err = svc.Extend(ctx, 999, 1, actor(1))
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_ExtendByMaxDaysMovesForward(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newEngine(t)
	store.addBook(1, 1, "Dune")
	store.addResident(5, "Ann")

	tr, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5}, actor(1))
	require.NoError(t, err)

	extended, err := svc.Extend(ctx, tr.ID, service.MaxDays, actor(1))
	require.NoError(t, err)
	require.True(t, extended.DueDate.After(tr.DueDate))
	require.Equal(t, int64(service.MaxDays)*86400, int64(extended.DueDate.Sub(tr.DueDate).Seconds()))
}

func TestService_AuditCountMatchesOperations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newEngine(t)
	store.addBook(1, 1, "Dune")
	store.addResident(5, "Ann")

	tr, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5}, actor(1))
	require.NoError(t, err)
	_, err = svc.Extend(ctx, tr.ID, 1, actor(1))
	require.NoError(t, err)
	_, err = svc.Extend(ctx, tr.ID, 2, actor(2))
	require.NoError(t, err)
	_, err = svc.Return(ctx, tr.ID, actor(2))
	require.NoError(t, err)

	// rejected operations leave no entry
	_, err = svc.Return(ctx, tr.ID, actor(2))
	require.Error(t, err)
	_, err = svc.Extend(ctx, tr.ID, 1, actor(2))
	require.Error(t, err)

	var actions []model.Action
	for _, m := range store.history(tr.ID) {
		actions = append(actions, m.Action)
	}
	require.Equal(t, []model.Action{model.ActionBorrow, model.ActionExtend, model.ActionExtend, model.ActionReturn}, actions)
}

func TestService_ConcurrentBorrowOfLastCopy(t *testing.T) {
	t.Parallel()
	svc, store, _ := newEngine(t)
	store.addBook(1, 1, "Dune")
	const workers = 8
	for id := 1; id <= workers; id++ {
		store.addResident(id, "r")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		noCopies  int
	)
	start := make(chan struct{})
	for id := 1; id <= workers; id++ {
		wg.Add(1)
		go func(residentID int) {
			defer wg.Done()
			<-start
			_, err := svc.Borrow(context.Background(), model.BorrowRequest{BookID: 1, ResidentID: residentID}, nil)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, errs.ErrInsufficientCopies):
				noCopies++
			}
		}(id)
	}
	close(start)
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, noCopies)
	require.Equal(t, 0, store.copies(1))
	require.Equal(t, 1, store.transactionCount())
}

func TestService_PublishFailureDoesNotFailOperation(t *testing.T) {
	t.Parallel()
	svc, store, pub := newEngine(t)
	pub.err = errors.New("broker down")
	store.addBook(1, 1, "Dune")
	store.addResident(5, "Ann")

	_, err := svc.Borrow(context.Background(), model.BorrowRequest{BookID: 1, ResidentID: 5}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, store.copies(1))
}

func TestService_Metrics(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	svc, store, _ := newEngine(t, service.WithMetrics(metrics.NewLending(reg)))
	store.addBook(1, 1, "Dune")
	store.addResident(5, "Ann")

	_, err := svc.Borrow(context.Background(), model.BorrowRequest{BookID: 1, ResidentID: 5}, nil)
	require.NoError(t, err)
	_, err = svc.Borrow(context.Background(), model.BorrowRequest{BookID: 1, ResidentID: 5}, nil)
	require.ErrorIs(t, err, errs.ErrDuplicateBorrow)

	n, err := testutil.GatherAndCount(reg, "library_lending_operations_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestService_GetTransaction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newEngine(t)
	store.addBook(1, 1, "Dune")
	store.addResident(5, "Ann")

	tr, err := svc.Borrow(ctx, model.BorrowRequest{BookID: 1, ResidentID: 5}, actor(1))
	require.NoError(t, err)
	_, err = svc.Extend(ctx, tr.ID, 2, actor(1))
	require.NoError(t, err)

	detail, err := svc.GetTransaction(ctx, tr.ID)
	require.NoError(t, err)
	require.Equal(t, "Dune", detail.Book.Title)
	require.Equal(t, "Ann", detail.Resident.FirstName)
	require.Len(t, detail.History, 2)
	// same timestamp, newest entry first by id
	require.Equal(t, model.ActionExtend, detail.History[0].Action)

	_, err = svc.GetTransaction(ctx, 42)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_ListTransactions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, store, _ := newEngine(t)
	store.addBook(1, 5, "Dune")
	store.addBook(2, 5, "Emma")
	store.addResident(5, "Ann")
	store.addResident(6, "Bob")

	for _, req := range []model.BorrowRequest{
		{BookID: 1, ResidentID: 5},
		{BookID: 2, ResidentID: 5},
		{BookID: 1, ResidentID: 6},
	} {
		_, err := svc.Borrow(ctx, req, nil)
		require.NoError(t, err)
	}
	_, err := svc.Return(ctx, 1, nil)
	require.NoError(t, err)

	resident := 5
	page, err := svc.ListTransactions(ctx, model.TransactionFilter{ResidentID: &resident})
	require.NoError(t, err)
	require.Equal(t, model.Paging{Page: 1, Limit: 10, TotalItems: 2, TotalPages: 1}, page.Paging)
	require.Equal(t, 2, page.Items[0].ID)

	status := model.StatusBorrowed
	page, err = svc.ListTransactions(ctx, model.TransactionFilter{Status: &status, Limit: 1, Page: 2})
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalItems)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 1)
	require.Equal(t, 2, page.Items[0].ID)

	book := 9
	page, err = svc.ListTransactions(ctx, model.TransactionFilter{BookID: &book})
	require.NoError(t, err)
	require.NotNil(t, page.Items)
	require.Empty(t, page.Items)
}
