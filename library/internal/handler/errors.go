package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/zllibrary/library-service/library/internal/errs"
	"github.com/zllibrary/library-service/pkg/auth"
)

const retryAfterSeconds = "1"

// fail maps an engine error to its HTTP status. The body carries the kind so
// clients can tell domain rejections apart.
func (h *Handler) fail(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	code := http.StatusInternalServerError
	switch kind {
	case errs.KindNotFound:
		code = http.StatusNotFound
	case errs.KindInsufficientCopies,
		errs.KindBorrowLimitExceeded,
		errs.KindDuplicateBorrow,
		errs.KindInvalidInput:
		code = http.StatusBadRequest
	case errs.KindInvalidTransition:
		code = http.StatusConflict
	case errs.KindStoreFailure:
		if errs.IsRetryable(err) {
			code = http.StatusServiceUnavailable
			c.Response().Header().Set("Retry-After", retryAfterSeconds)
		}
	}
	if code >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return echo.NewHTTPError(code, errs.ErrorResponse{Message: err.Error(), Kind: kind})
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{Message: message, Kind: errs.KindInvalidInput})
}

func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, badRequest(name + " is invalid")
	}
	return id, nil
}

func queryInt(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, badRequest(name + " is invalid")
	}
	return &n, nil
}

func actorID(c echo.Context) *int {
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return nil
	}
	id := actor.UserID
	return &id
}
