package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/khlegal/practice-api/internal/services"
	"github.com/khlegal/practice-api/pkg/logger"
)

// errorHandler maps service sentinel errors to HTTP status codes and emits a
// uniform {"error": ...} body. Unknown errors become 500 with the detail
// logged, not leaked.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	case errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrMatterNotFound),
		errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, services.ErrDocumentNotFound):
		code = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, services.ErrNothingBillable),
		errors.Is(err, services.ErrEntryBilled),
		errors.Is(err, services.ErrInvalidStatusChange):
		code = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		code = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, services.ErrUserExists):
		code = http.StatusConflict
		msg = err.Error()
	default:
		log := logger.Get()
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")
	}

	if err := c.JSON(code, map[string]string{"error": msg}); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("write error response")
	}
}
