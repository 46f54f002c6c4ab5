package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zllibrary/library-service/library/internal/errs"
	"github.com/zllibrary/library-service/library/internal/model"
	"github.com/zllibrary/library-service/library/internal/repository"
)

// memStore is an in-memory repository. WithinTx holds one mutex for the whole
// callback, which stands in for the row locks, and restores a snapshot on error.
type memStore struct {
	mu        sync.Mutex
	books     map[int]model.Book
	residents map[int]model.Resident
	txs       []model.BookTransaction
	meta      []model.TransactionMetadata

	failAdjust error
	failAppend error
	now        func() time.Time
}

var (
	_ repository.Repository = (*memStore)(nil)
	_ repository.Tx         = (*memTx)(nil)
	_ repository.Stats      = (*memStore)(nil)
)

func newMemStore(now func() time.Time) *memStore {
	return &memStore{
		books:     make(map[int]model.Book),
		residents: make(map[int]model.Resident),
		now:       now,
	}
}

func (s *memStore) addBook(id, copies int, title string) {
	s.books[id] = model.Book{ID: id, Title: title, Author: "author", AvailableCopies: copies}
}

func (s *memStore) addResident(id int, name string) {
	s.residents[id] = model.Resident{ID: id, FirstName: name, LastName: "resident", Grade: 3}
}

func (s *memStore) copies(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id].AvailableCopies
}

func (s *memStore) history(transactionID int) []model.TransactionMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.TransactionMetadata
	for _, m := range s.meta {
		if m.TransactionID == transactionID {
			out = append(out, m)
		}
	}
	return out
}

func (s *memStore) transactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

type snapshot struct {
	books map[int]model.Book
	txs   []model.BookTransaction
	meta  []model.TransactionMetadata
}

func (s *memStore) snapshot() snapshot {
	books := make(map[int]model.Book, len(s.books))
	for k, v := range s.books {
		books[k] = v
	}
	return snapshot{
		books: books,
		txs:   append([]model.BookTransaction(nil), s.txs...),
		meta:  append([]model.TransactionMetadata(nil), s.meta...),
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return &errs.StoreError{Op: "tx", Retryable: true, Err: err}
	}
	snap := s.snapshot()
	if err := fn(&memTx{s: s}); err != nil {
		s.books, s.txs, s.meta = snap.books, snap.txs, snap.meta
		return err
	}
	return nil
}

func (s *memStore) GetTransaction(_ context.Context, id int) (model.BookTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transaction(id)
}

func (s *memStore) transaction(id int) (model.BookTransaction, error) {
	if id < 1 || id > len(s.txs) {
		return model.BookTransaction{}, errs.ErrNotFound
	}
	return s.txs[id-1], nil
}

func (s *memStore) ListTransactions(_ context.Context, f model.TransactionFilter) ([]model.BookTransaction, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []model.BookTransaction
	for i := len(s.txs) - 1; i >= 0; i-- {
		t := s.txs[i]
		if f.ResidentID != nil && t.ResidentID != *f.ResidentID {
			continue
		}
		if f.BookID != nil && t.BookID != *f.BookID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		matched = append(matched, t)
	}
	from := f.Offset()
	if from > len(matched) {
		from = len(matched)
	}
	to := from + f.Limit
	if to > len(matched) {
		to = len(matched)
	}
	return matched[from:to], len(matched), nil
}

func (s *memStore) ListMetadata(_ context.Context, transactionID int) ([]model.TransactionMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.TransactionMetadata
	for _, m := range s.meta {
		if m.TransactionID == transactionID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ActionAt.Equal(out[j].ActionAt) {
			return out[i].ActionAt.After(out[j].ActionAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *memStore) GetBook(_ context.Context, id int) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return b, nil
}

func (s *memStore) GetResident(_ context.Context, id int) (model.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.residents[id]
	if !ok {
		return model.Resident{}, errs.ErrNotFound
	}
	return r, nil
}

// memTx runs with memStore.mu already held.
type memTx struct {
	s *memStore
}

func (t *memTx) LockResident(_ context.Context, id int) (model.Resident, error) {
	r, ok := t.s.residents[id]
	if !ok {
		return model.Resident{}, errs.ErrNotFound
	}
	return r, nil
}

func (t *memTx) LockBook(_ context.Context, id int) (model.Book, error) {
	b, ok := t.s.books[id]
	if !ok {
		return model.Book{}, errs.ErrNotFound
	}
	return b, nil
}

func (t *memTx) LockTransaction(_ context.Context, id int) (model.BookTransaction, error) {
	return t.s.transaction(id)
}

func (t *memTx) CountActiveBorrows(_ context.Context, residentID int) (int, error) {
	n := 0
	for _, tr := range t.s.txs {
		if tr.ResidentID == residentID && tr.Status == model.StatusBorrowed {
			n++
		}
	}
	return n, nil
}

func (t *memTx) HasActiveBorrow(_ context.Context, bookID, residentID int) (bool, error) {
	for _, tr := range t.s.txs {
		if tr.BookID == bookID && tr.ResidentID == residentID && tr.Status == model.StatusBorrowed {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) CreateTransaction(_ context.Context, tr model.BookTransaction) (model.BookTransaction, error) {
	tr.ID = len(t.s.txs) + 1
	tr.CreatedAt = t.s.now()
	t.s.txs = append(t.s.txs, tr)
	return tr, nil
}

func (t *memTx) SaveTransaction(_ context.Context, tr model.BookTransaction) (model.BookTransaction, error) {
	if _, err := t.s.transaction(tr.ID); err != nil {
		return model.BookTransaction{}, err
	}
	t.s.txs[tr.ID-1] = tr
	return tr, nil
}

func (t *memTx) AdjustCopies(_ context.Context, bookID, delta int) (int, error) {
	if t.s.failAdjust != nil {
		return 0, t.s.failAdjust
	}
	b, ok := t.s.books[bookID]
	if !ok {
		return 0, errs.ErrNotFound
	}
	if b.AvailableCopies+delta < 0 {
		return 0, errs.ErrInsufficientCopies
	}
	b.AvailableCopies += delta
	t.s.books[bookID] = b
	return b.AvailableCopies, nil
}

func (t *memTx) AppendMetadata(_ context.Context, m model.TransactionMetadata) (model.TransactionMetadata, error) {
	if t.s.failAppend != nil {
		return model.TransactionMetadata{}, t.s.failAppend
	}
	m.ID = len(t.s.meta) + 1
	t.s.meta = append(t.s.meta, m)
	return m, nil
}

func (s *memStore) MostBorrowed(_ context.Context, limit int) ([]model.BookBorrowCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[int]int)
	for _, t := range s.txs {
		counts[t.BookID]++
	}
	out := make([]model.BookBorrowCount, 0, len(counts))
	for id, n := range counts {
		b := s.books[id]
		out = append(out, model.BookBorrowCount{BookID: id, Title: b.Title, Author: b.Author, BorrowCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BorrowCount != out[j].BorrowCount {
			return out[i].BorrowCount > out[j].BorrowCount
		}
		return out[i].BookID < out[j].BookID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) RecentlyBorrowedBooks(_ context.Context, offset, limit int) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Book
	for i := len(s.txs) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.books[s.txs[i].BookID])
	}
	return out, nil
}

func (s *memStore) ActiveBorrows(_ context.Context) ([]model.ActiveBorrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ActiveBorrow
	for _, t := range s.txs {
		if t.Status != model.StatusBorrowed {
			continue
		}
		r := s.residents[t.ResidentID]
		out = append(out, model.ActiveBorrow{
			BookTransaction:   t,
			BookTitle:         s.books[t.BookID].Title,
			ResidentFirstName: r.FirstName,
			ResidentLastName:  r.LastName,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (s *memStore) ResidentHistory(_ context.Context, residentID int) ([]model.BookTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.BookTransaction
	for i := len(s.txs) - 1; i >= 0; i-- {
		if s.txs[i].ResidentID == residentID {
			out = append(out, s.txs[i])
		}
	}
	return out, nil
}

func (s *memStore) ResidentsBorrowedSince(_ context.Context, since time.Time) ([]model.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Resident
	for i := len(s.meta) - 1; i >= 0; i-- {
		m := s.meta[i]
		if m.Action != model.ActionBorrow || m.ActionAt.Before(since) {
			continue
		}
		out = append(out, s.residents[s.txs[m.TransactionID-1].ResidentID])
	}
	return out, nil
}

func (s *memStore) AvailableBooks(_ context.Context) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Book
	for _, b := range s.books {
		if b.AvailableCopies > 0 {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memStore) MostActiveResidents(_ context.Context, limit int) ([]model.ResidentActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[int]int)
	for _, t := range s.txs {
		counts[t.ResidentID]++
	}
	out := make([]model.ResidentActivity, 0, len(counts))
	for id, n := range counts {
		r := s.residents[id]
		out = append(out, model.ResidentActivity{ResidentID: id, FirstName: r.FirstName, LastName: r.LastName, TransactionCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TransactionCount != out[j].TransactionCount {
			return out[i].TransactionCount > out[j].TransactionCount
		}
		return out[i].ResidentID < out[j].ResidentID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
