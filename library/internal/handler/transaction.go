package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zllibrary/library-service/library/internal/model"
	"github.com/zllibrary/library-service/pkg/validate"
)

// Borrow godoc
// @Summary Borrow a book for a resident
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body model.BorrowRequest true "borrow request"
// @Success 200 {object} model.BookTransaction
// @Failure 400 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Router /api/v1/transactions/borrow [post]
func (h *Handler) Borrow(c echo.Context) error {
	var req model.BorrowRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(validate.Message(err))
	}
	t, err := h.transactionSvc.Borrow(c.Request().Context(), req, actorID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Return godoc
// @Summary Return a borrowed book
// @Tags transactions
// @Produce json
// @Param transaction_id path int true "transaction id"
// @Success 200 {object} model.BookTransaction
// @Failure 404 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /api/v1/transactions/return/{transaction_id} [post]
func (h *Handler) Return(c echo.Context) error {
	id, err := pathID(c, "transaction_id")
	if err != nil {
		return err
	}
	t, err := h.transactionSvc.Return(c.Request().Context(), id, actorID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// ReportLost godoc
// @Summary Mark a borrowed book as lost
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "transaction id"
// @Param request body model.LostRequest false "loss declaration"
// @Success 200 {object} model.BookTransaction
// @Failure 404 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /api/v1/transactions/lost/{transaction_id} [post]
func (h *Handler) ReportLost(c echo.Context) error {
	id, err := pathID(c, "transaction_id")
	if err != nil {
		return err
	}
	var req model.LostRequest
	if c.Request().ContentLength != 0 {
		if err = c.Bind(&req); err != nil {
			return badRequest("invalid request body")
		}
		if err = c.Validate(&req); err != nil {
			return badRequest(validate.Message(err))
		}
	}
	t, err := h.transactionSvc.ReportLost(c.Request().Context(), id, actorID(c), req.Declaration)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Extend godoc
// @Summary Extend the due date of a borrowed book
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "transaction id"
// @Param request body model.ExtendRequest true "extension"
// @Success 200 {object} model.BookTransaction
// @Failure 400 {object} errs.ErrorResponse
// @Failure 404 {object} errs.ErrorResponse
// @Failure 409 {object} errs.ErrorResponse
// @Router /api/v1/transactions/extend/{transaction_id} [post]
func (h *Handler) Extend(c echo.Context) error {
	id, err := pathID(c, "transaction_id")
	if err != nil {
		return err
	}
	var req model.ExtendRequest
	if err = c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	t, err := h.transactionSvc.Extend(c.Request().Context(), id, req.ExtraDays, actorID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// GetTransaction godoc
// @Summary Transaction with its book, resident and audit trail
// @Tags transactions
// @Produce json
// @Param transaction_id path int true "transaction id"
// @Success 200 {object} model.TransactionDetail
// @Failure 404 {object} errs.ErrorResponse
// @Router /api/v1/transactions/{transaction_id} [get]
func (h *Handler) GetTransaction(c echo.Context) error {
	id, err := pathID(c, "transaction_id")
	if err != nil {
		return err
	}
	detail, err := h.transactionSvc.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// ListTransactions godoc
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param resident_id query int false "resident id"
// @Param book_id query int false "book id"
// @Param status query string false "borrowed, returned, lost or 1..3"
// @Param page query int false "page, default 1"
// @Param limit query int false "page size, default 10, max 100"
// @Success 200 {object} model.ListTransactions
// @Failure 400 {object} errs.ErrorResponse
// @Router /api/v1/transactions [get]
func (h *Handler) ListTransactions(c echo.Context) error {
	var (
		filter model.TransactionFilter
		err    error
	)
	if filter.ResidentID, err = queryInt(c, "resident_id"); err != nil {
		return err
	}
	if filter.BookID, err = queryInt(c, "book_id"); err != nil {
		return err
	}
	if raw := c.QueryParam("status"); raw != "" {
		status, err := model.ParseStatus(raw)
		if err != nil {
			return badRequest("status is invalid")
		}
		filter.Status = &status
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	if page != nil {
		filter.Page = *page
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}
	if limit != nil {
		filter.Limit = *limit
	}

	list, err := h.transactionSvc.ListTransactions(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
