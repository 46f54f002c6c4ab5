package handler

import (
	"context"

	"github.com/zllibrary/library-service/library/internal/model"
	"github.com/zllibrary/library-service/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type TransactionService interface {
	Borrow(ctx context.Context, req model.BorrowRequest, actorID *int) (model.BookTransaction, error)
	Return(ctx context.Context, transactionID int, actorID *int) (model.BookTransaction, error)
	ReportLost(ctx context.Context, transactionID int, actorID *int, declaration string) (model.BookTransaction, error)
	Extend(ctx context.Context, transactionID, extraDays int, actorID *int) (model.BookTransaction, error)
	GetTransaction(ctx context.Context, transactionID int) (model.TransactionDetail, error)
	ListTransactions(ctx context.Context, filter model.TransactionFilter) (model.ListTransactions, error)
}

type ReportService interface {
	MostBorrowed(ctx context.Context) ([]model.BookBorrowCount, error)
	LastBorrowed(ctx context.Context) ([]model.Book, error)
	ActiveBorrows(ctx context.Context) ([]model.ActiveBorrow, error)
	BorrowHistory(ctx context.Context, residentID int) ([]model.BookTransaction, error)
	ActiveResidents(ctx context.Context, days *int) ([]model.Resident, error)
	AvailableBooks(ctx context.Context) ([]model.Book, error)
	MostActiveResidents(ctx context.Context) ([]model.ResidentActivity, error)
}

var (
	_ TransactionService = (*service.Service)(nil)
	_ ReportService      = (*service.Reports)(nil)
)
