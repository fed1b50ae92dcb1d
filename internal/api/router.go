// Package api wires the HTTP surface: routes, middleware, validation, and
// the central error handler.
package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/khlegal/practice-api/internal/api/metrics"
	"github.com/khlegal/practice-api/internal/config"
	"github.com/khlegal/practice-api/internal/handlers"
	"github.com/khlegal/practice-api/internal/middleware"
	"github.com/khlegal/practice-api/internal/services"
	"github.com/khlegal/practice-api/pkg/logger"
)

// New builds the echo instance with every route registered. Auth routes and
// health/metrics are public; everything under /api requires a bearer token.
func New(cfg *config.Config, db *gorm.DB) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger())

	seq := services.NewSequenceService(db)
	clients := services.NewClientService(db)
	matters := services.NewMatterService(db, seq)
	entries := services.NewTimeEntryService(db)
	invoices := services.NewInvoiceService(db, seq, cfg.VATRate, cfg.DueDays)
	documents := services.NewDocumentService(db, cfg.UploadDir)
	reports := services.NewReportService(db)
	auth := services.NewAuthService(db, cfg.JWTSecret, 24*time.Hour)

	clientH := handlers.NewClientHandler(clients)
	matterH := handlers.NewMatterHandler(matters)
	entryH := handlers.NewTimeEntryHandler(entries)
	invoiceH := handlers.NewInvoiceHandler(invoices)
	documentH := handlers.NewDocumentHandler(documents)
	reportH := handlers.NewReportHandler(reports)
	authH := handlers.NewAuthHandler(auth)
	healthH := handlers.NewHealthHandler(db)

	e.GET("/health", healthH.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/auth/register", authH.Register)
	e.POST("/auth/login", authH.Login)

	api := e.Group("/api", middleware.JWT(cfg.JWTSecret))

	api.GET("/clients", clientH.List)
	api.POST("/clients", clientH.Create)
	api.GET("/clients/:id", clientH.Get)
	api.PATCH("/clients/:id", clientH.Update)
	api.GET("/clients/:id/statement", reportH.ClientStatement)
	api.GET("/clients/:id/statement/pdf", reportH.ClientStatementPDF)

	api.GET("/matters", matterH.List)
	api.POST("/matters", matterH.Create)
	api.GET("/matters/:id", matterH.Get)
	api.PATCH("/matters/:id", matterH.Update)
	api.POST("/matters/:id/documents", documentH.Upload)
	api.GET("/matters/:id/documents", documentH.List)

	api.GET("/time-entries", entryH.List)
	api.POST("/time-entries", entryH.Create)
	api.PATCH("/time-entries/:id", entryH.Update)
	api.DELETE("/time-entries/:id", entryH.Delete)

	api.GET("/invoices", invoiceH.List)
	api.POST("/invoices", invoiceH.Create)
	api.GET("/invoices/:id", invoiceH.Get)
	api.PATCH("/invoices/:id/status", invoiceH.UpdateStatus)
	api.GET("/invoices/:id/pdf", invoiceH.PDF)

	api.GET("/documents/:id/download", documentH.Download)

	api.GET("/reports/dashboard", reportH.Dashboard)
	api.GET("/reports/monthly", reportH.Monthly)
	api.GET("/reports/monthly/pdf", reportH.MonthlyPDF)

	return e
}

// requestLogger logs each request with zerolog and records its latency in
// the request duration histogram.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)
			status := c.Response().Status

			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).
				Observe(elapsed.Seconds())

			log := logger.Get()
			log.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Dur("latency", elapsed).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request")
			return nil
		}
	}
}
