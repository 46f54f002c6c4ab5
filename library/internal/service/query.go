package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/zllibrary/library-service/library/internal/model"
)

func (s *Service) GetTransaction(ctx context.Context, transactionID int) (model.TransactionDetail, error) {
	t, err := s.repo.GetTransaction(ctx, transactionID)
	if err != nil {
		return model.TransactionDetail{}, errors.Wrapf(err, "transaction %d", transactionID)
	}

	detail := model.TransactionDetail{BookTransaction: t}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		book, err := s.repo.GetBook(gctx, t.BookID)
		if err != nil {
			return errors.Wrapf(err, "book %d", t.BookID)
		}
		detail.Book = book
		return nil
	})
	g.Go(func() error {
		resident, err := s.repo.GetResident(gctx, t.ResidentID)
		if err != nil {
			return errors.Wrapf(err, "resident %d", t.ResidentID)
		}
		detail.Resident = resident
		return nil
	})
	g.Go(func() error {
		history, err := s.repo.ListMetadata(gctx, t.ID)
		if err != nil {
			return err
		}
		if history == nil {
			history = []model.TransactionMetadata{}
		}
		detail.History = history
		return nil
	})
	if err = g.Wait(); err != nil {
		return model.TransactionDetail{}, err
	}
	return detail, nil
}

func (s *Service) ListTransactions(ctx context.Context, filter model.TransactionFilter) (model.ListTransactions, error) {
	filter.Normalize()
	items, total, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return model.ListTransactions{}, err
	}
	if items == nil {
		items = []model.BookTransaction{}
	}
	return model.ListTransactions{
		Paging: model.NewPaging(filter.Page, filter.Limit, total),
		Items:  items,
	}, nil
}
