package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/zllibrary/library-service/pkg/auth"
	md "github.com/zllibrary/library-service/pkg/middleware"
	"github.com/zllibrary/library-service/pkg/validate"
	_ "github.com/zllibrary/library-service/swagger"
)

type Handler struct {
	transactionSvc TransactionService
	reportSvc      ReportService
	log            *zap.Logger
	auth           auth.Config
	metrics        http.Handler
}

type Option func(h *Handler)

func WithAuth(cfg auth.Config) Option {
	return func(h *Handler) {
		h.auth = cfg
	}
}

// WithMetrics exposes the given handler at /metrics.
func WithMetrics(metrics http.Handler) Option {
	return func(h *Handler) {
		h.metrics = metrics
	}
}

func New(transactionSvc TransactionService, reportSvc ReportService, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		transactionSvc: transactionSvc,
		reportSvc:      reportSvc,
		log:            log,
		auth:           auth.Config{Mode: auth.ModeGateway},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, auth.XUserIDHeader, auth.XUserRoleHeader},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)
	if h.metrics != nil {
		base.GET("/metrics", echo.WrapHandler(h.metrics))
	}

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.Authentication(h.auth),
	)

	tx := api.Group("/transactions")
	tx.POST("/borrow", h.Borrow)
	tx.POST("/return/:transaction_id", h.Return)
	tx.POST("/lost/:transaction_id", h.ReportLost, md.RequireRoles(auth.AdminRoles...))
	tx.POST("/extend/:transaction_id", h.Extend, md.RequireRoles(auth.StaffRoles...))
	tx.GET("", h.ListTransactions)
	tx.GET("/", h.ListTransactions)
	tx.GET("/:transaction_id", h.GetTransaction)

	tx.GET("/stats/most-borrowed", h.MostBorrowed)
	tx.GET("/stats/last-borrowed", h.LastBorrowed)
	tx.GET("/stats/active-borrows", h.ActiveBorrows, md.RequireRoles(auth.StaffRoles...))
	tx.GET("/stats/available-books", h.AvailableBooks)
	tx.GET("/stats/active-residents", h.ActiveResidents)
	tx.GET("/stats/most-active-residents", h.MostActiveResidents)
	tx.GET("/residents/:resident_id/history", h.BorrowHistory)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
