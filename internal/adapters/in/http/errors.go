package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/lot"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/model/order"
	"github.com/3suji3/Inventory-management-test/internal/core/domain/services"
	"github.com/3suji3/Inventory-management-test/internal/core/ports"
	"github.com/3suji3/Inventory-management-test/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes of the JSON error body.
const (
	CodeValidation             = "validation"
	CodeNotFound               = "not_found"
	CodeInsufficientStock      = "insufficient_stock"
	CodeInvalidTransition      = "invalid_transition"
	CodeIncompleteAllocation   = "incomplete_allocation"
	CodeNotAllocated           = "not_allocated"
	CodeAlreadyExists          = "already_exists"
	CodeConcurrentModification = "concurrent_modification"
	CodeInternal               = "internal"
)

// toErrorResponse maps an error returned by a handler to a status code and
// body. Unknown errors become 500 without leaking their text.
func toErrorResponse(err error) (int, Error) {
	var (
		stockErr      *services.InsufficientStockError
		validationErr *ValidationError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &stockErr):
		return http.StatusConflict, Error{
			Code:      CodeInsufficientStock,
			Message:   stockErr.Error(),
			Shortages: fromShortages(stockErr.Shortages),
		}
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, Error{Code: CodeValidation, Message: "request is invalid", Details: validationErr.Details}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, Error{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, Error{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, Error{Code: CodeInvalidTransition, Message: err.Error()}
	case errors.Is(err, order.ErrIncompleteAllocation):
		return http.StatusConflict, Error{Code: CodeIncompleteAllocation, Message: err.Error()}
	case errors.Is(err, services.ErrNotAllocated):
		return http.StatusConflict, Error{Code: CodeNotAllocated, Message: err.Error()}
	case errors.Is(err, ports.ErrAlreadyExists):
		return http.StatusConflict, Error{Code: CodeAlreadyExists, Message: err.Error()}
	case errors.Is(err, ports.ErrConcurrentModification):
		return http.StatusConflict, Error{Code: CodeConcurrentModification, Message: err.Error()}
	case errors.Is(err, lot.ErrInsufficientLotQuantity):
		return http.StatusConflict, Error{Code: CodeInsufficientStock, Message: err.Error()}
	case errors.As(err, &httpErr):
		return httpErr.Code, Error{Code: httpCode(httpErr.Code), Message: httpMessage(httpErr)}
	default:
		return http.StatusInternalServerError, Error{Code: CodeInternal, Message: "an unexpected error occurred"}
	}
}

func httpCode(status int) string {
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}

func httpMessage(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	return http.StatusText(err.Code)
}

// errorHandler renders every error returned by a route as an Error body.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := toErrorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
