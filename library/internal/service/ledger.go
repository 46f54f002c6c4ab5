package service

import (
	"context"

	"github.com/zllibrary/library-service/library/internal/repository"
)

// copyLedger is the only writer of available_copies. It must be used inside the
// repository transaction of the operation that moves the copy.
type copyLedger struct {
	tx repository.Tx
}

func (l copyLedger) decrement(ctx context.Context, bookID int) (int, error) {
	return l.tx.AdjustCopies(ctx, bookID, -1)
}

func (l copyLedger) increment(ctx context.Context, bookID int) (int, error) {
	return l.tx.AdjustCopies(ctx, bookID, 1)
}
