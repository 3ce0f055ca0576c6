package http_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	cafe_http "cafe/internal/adapters/in/http"
	"cafe/internal/core/domain/model/identity"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"echo error keeps its code", echo.NewHTTPError(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed},
		{"contract violation", &cafe_http.ContractError{Err: errors.New("size above maximum")}, http.StatusBadRequest},
		{"unauthenticated", identity.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", fmt.Errorf("get order: %w", identity.ErrForbidden), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("order", "1"), http.StatusNotFound},
		{"invalid transition", errs.NewTransitionIsInvalidError("PAID", "PAID"), http.StatusConflict},
		{"idempotency key in progress", ports.ErrIdempotencyKeyInProgress, http.StatusConflict},
		{"required", errs.NewValueIsRequiredError("items"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("price"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("size", 51, 1, 50), http.StatusBadRequest},
		{"joined validation errors", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")), http.StatusBadRequest},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cafe_http.StatusOf(tc.err))
		})
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	handler := cafe_http.HTTPErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	e := echo.New()

	t.Run("client errors carry their message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		handler(errs.NewObjectNotFoundError("order", "42"), c)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
		assert.Contains(t, rec.Body.String(), "order")
	})

	t.Run("server errors are masked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		handler(errors.New("pq: password authentication failed"), c)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("HEAD requests get no body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)

		handler(identity.ErrForbidden, c)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
