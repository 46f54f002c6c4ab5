package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zllibrary/library-service/library/internal/model"
	"github.com/zllibrary/library-service/library/internal/repository"
)

// auditTrail appends entries and never rewrites them. An append is always the
// last write of an operation.
type auditTrail struct {
	tx  repository.Tx
	now func() time.Time
}

func (a auditTrail) append(ctx context.Context, transactionID int, action model.Action, actorID *int, notes *string) error {
	_, err := a.tx.AppendMetadata(ctx, model.TransactionMetadata{
		TransactionID: transactionID,
		Action:        action,
		ActionBy:      actorID,
		ActionAt:      a.now(),
		Notes:         notes,
	})
	return err
}

func extendNote(days int) *string {
	note := fmt.Sprintf("Extended by %d days", days)
	return &note
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
