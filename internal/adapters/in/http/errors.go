package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"cafe/internal/core/domain/model/identity"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ContractError wraps a request that does not match the OpenAPI contract.
type ContractError struct {
	Err error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("request does not match the contract: %v", e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

// StatusOf maps an error to its HTTP status code.
func StatusOf(err error) int {
	var httpErr *echo.HTTPError
	var contractErr *ContractError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &contractErr):
		return http.StatusBadRequest
	case errors.Is(err, identity.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, identity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrTransitionIsInvalid),
		errors.Is(err, ports.ErrIdempotencyKeyInProgress):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HTTPErrorHandler renders every error as an ApiResponse. Server errors are
// logged and their details hidden from the client.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := StatusOf(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			message = fmt.Sprint(httpErr.Message)
		}

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
			message = http.StatusText(status)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ApiResponse{Success: false, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", slog.Any("error", writeErr))
		}
	}
}
