package model

import (
	"time"
)

type Book struct {
	ID              int     `json:"book_id" db:"book_id"`
	Title           string  `json:"title" db:"title"`
	Author          string  `json:"author" db:"author"`
	ISBN            *string `json:"isbn" db:"isbn"`
	PublishedYear   *int    `json:"published_year" db:"published_year"`
	Description     *string `json:"description" db:"description"`
	ImageURL        *string `json:"image_url" db:"image_url"`
	SpecialtyID     *int    `json:"specialty_id" db:"specialty_id"`
	AvailableCopies int     `json:"available_copies" db:"available_copies"`
}

type Resident struct {
	ID          int    `json:"resident_id" db:"resident_id"`
	FirstName   string `json:"first_name" db:"first_name"`
	LastName    string `json:"last_name" db:"last_name"`
	UserID      *int   `json:"user_id" db:"user_id"`
	SpecialtyID *int   `json:"specialty_id" db:"specialty_id"`
	Grade       int    `json:"grade" db:"grade"`
}

type BookTransaction struct {
	ID           int        `json:"transaction_id" db:"transaction_id"`
	BookID       int        `json:"book_id" db:"book_id"`
	ResidentID   int        `json:"resident_id" db:"resident_id"`
	Status       Status     `json:"status" db:"status_id"`
	DueDate      time.Time  `json:"due_date" db:"due_date"`
	ReturnedDate *time.Time `json:"returned_date" db:"returned_date"`
	Notes        *string    `json:"notes" db:"notes"`
	HandledBy    *int       `json:"handled_by" db:"handled_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// TransactionMetadata is one audit trail entry.
type TransactionMetadata struct {
	ID            int       `json:"metadata_id" db:"metadata_id"`
	TransactionID int       `json:"transaction_id" db:"transaction_id"`
	Action        Action    `json:"action" db:"action"`
	ActionBy      *int      `json:"action_by" db:"action_by"`
	ActionAt      time.Time `json:"action_at" db:"action_at"`
	Notes         *string   `json:"notes" db:"notes"`
}

type TransactionDetail struct {
	BookTransaction
	Book     Book                  `json:"book"`
	Resident Resident              `json:"resident"`
	History  []TransactionMetadata `json:"history"`
}

type BorrowRequest struct {
	BookID     int        `json:"book_id" validate:"required,gt=0"`
	ResidentID int        `json:"resident_id" validate:"required,gt=0"`
	DueDate    *time.Time `json:"due_date"`
	Notes      *string    `json:"notes" validate:"omitempty,max=1000"`
}

type LostRequest struct {
	Declaration string `json:"declaration" validate:"max=1000"`
}

type ExtendRequest struct {
	ExtraDays int `json:"extra_days"`
}

type TransactionFilter struct {
	ResidentID *int
	BookID     *int
	Status     *Status
	Page       int
	Limit      int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = 1_000_000
)

// Normalize fills page and limit defaults and clamps both to their maximums,
// keeping Offset far from integer overflow.
func (f *TransactionFilter) Normalize() {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
}

func (f TransactionFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type Paging struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

func NewPaging(page, limit, total int) Paging {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Paging{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: pages,
	}
}

type ListTransactions struct {
	Paging `json:",inline"`
	Items  []BookTransaction `json:"items"`
}

type BookBorrowCount struct {
	BookID      int    `json:"book_id" db:"book_id"`
	Title       string `json:"title" db:"title"`
	Author      string `json:"author" db:"author"`
	BorrowCount int    `json:"borrow_count" db:"borrow_count"`
}

type ActiveBorrow struct {
	BookTransaction
	BookTitle         string `json:"book_title" db:"book_title"`
	ResidentFirstName string `json:"resident_first_name" db:"first_name"`
	ResidentLastName  string `json:"resident_last_name" db:"last_name"`
}

type ResidentActivity struct {
	ResidentID       int    `json:"resident_id" db:"resident_id"`
	FirstName        string `json:"first_name" db:"first_name"`
	LastName         string `json:"last_name" db:"last_name"`
	TransactionCount int    `json:"transaction_count" db:"transaction_count"`
}
