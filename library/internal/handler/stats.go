package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MostBorrowed godoc
// @Summary Top 10 books by number of transactions
// @Tags stats
// @Produce json
// @Success 200 {array} model.BookBorrowCount
// @Router /api/v1/transactions/stats/most-borrowed [get]
func (h *Handler) MostBorrowed(c echo.Context) error {
	items, err := h.reportSvc.MostBorrowed(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// LastBorrowed godoc
// @Summary Ten most recently borrowed distinct books
// @Tags stats
// @Produce json
// @Success 200 {array} model.Book
// @Router /api/v1/transactions/stats/last-borrowed [get]
func (h *Handler) LastBorrowed(c echo.Context) error {
	items, err := h.reportSvc.LastBorrowed(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ActiveBorrows godoc
// @Summary Transactions currently borrowed
// @Tags stats
// @Produce json
// @Success 200 {array} model.ActiveBorrow
// @Router /api/v1/transactions/stats/active-borrows [get]
func (h *Handler) ActiveBorrows(c echo.Context) error {
	items, err := h.reportSvc.ActiveBorrows(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// AvailableBooks godoc
// @Summary Books with at least one available copy
// @Tags stats
// @Produce json
// @Success 200 {array} model.Book
// @Router /api/v1/transactions/stats/available-books [get]
func (h *Handler) AvailableBooks(c echo.Context) error {
	items, err := h.reportSvc.AvailableBooks(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ActiveResidents godoc
// @Summary Residents who borrowed within the trailing window
// @Tags stats
// @Produce json
// @Param days query int false "window in days, 1..3650"
// @Success 200 {array} model.Resident
// @Failure 400 {object} errs.ErrorResponse
// @Router /api/v1/transactions/stats/active-residents [get]
func (h *Handler) ActiveResidents(c echo.Context) error {
	days, err := queryInt(c, "days")
	if err != nil {
		return err
	}
	items, err := h.reportSvc.ActiveResidents(c.Request().Context(), days)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// MostActiveResidents godoc
// @Summary Top 10 residents by number of transactions
// @Tags stats
// @Produce json
// @Success 200 {array} model.ResidentActivity
// @Router /api/v1/transactions/stats/most-active-residents [get]
func (h *Handler) MostActiveResidents(c echo.Context) error {
	items, err := h.reportSvc.MostActiveResidents(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// BorrowHistory godoc
// @Summary All transactions of a resident, newest first
// @Tags stats
// @Produce json
// @Param resident_id path int true "resident id"
// @Success 200 {array} model.BookTransaction
// @Failure 404 {object} errs.ErrorResponse
// @Router /api/v1/transactions/residents/{resident_id}/history [get]
func (h *Handler) BorrowHistory(c echo.Context) error {
	id, err := pathID(c, "resident_id")
	if err != nil {
		return err
	}
	items, err := h.reportSvc.BorrowHistory(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}
