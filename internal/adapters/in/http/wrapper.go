package http

import (
	"fmt"
	"net/http"

	"cafe/internal/core/domain/model/identity"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists every operation of the contract.
type ServerInterface interface {
	ListOrders(ctx echo.Context, params PageParams) error
	ListPendingOrders(ctx echo.Context, params PageParams) error
	ListDeliveringOrders(ctx echo.Context, params PageParams) error
	ListPaidOrders(ctx echo.Context, params PageParams) error
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	DeleteOrder(ctx echo.Context, id openapi_types.UUID) error
	PayOrder(ctx echo.Context, id openapi_types.UUID) error
	ReceiveOrder(ctx echo.Context, id openapi_types.UUID) error

	ListCartLines(ctx echo.Context) error
	AddCartLine(ctx echo.Context) error
	ChangeCartLine(ctx echo.Context, id openapi_types.UUID) error
	RemoveCartLine(ctx echo.Context, id openapi_types.UUID) error

	ListMenuItems(ctx echo.Context) error
	CreateMenuItem(ctx echo.Context) error

	ListStock(ctx echo.Context) error
	SetStock(ctx echo.Context, menuItemID openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) bindPageParams(ctx echo.Context) (PageParams, error) {
	var params PageParams
	for name, dest := range map[string]any{
		"page":    &params.Page,
		"size":    &params.Size,
		"sortBy":  &params.SortBy,
		"sortDir": &params.SortDir,
	} {
		if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
			return PageParams{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		}
	}
	return params, nil
}

func (w *ServerInterfaceWrapper) bindID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func (w *ServerInterfaceWrapper) paged(call func(echo.Context, PageParams) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		params, err := w.bindPageParams(ctx)
		if err != nil {
			return err
		}
		return call(ctx, params)
	}
}

func (w *ServerInterfaceWrapper) byID(name string, call func(echo.Context, openapi_types.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := w.bindID(ctx, name)
		if err != nil {
			return err
		}
		return call(ctx, id)
	}
}

// CreateOrder converts the optional Idempotency-Key header.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var params CreateOrderParams

	if values, found := ctx.Request().Header[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		if n := len(values); n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for Idempotency-Key, got %d", n))
		}

		var key string
		err := runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", values[0], &key, runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationHeader,
			Explode:       false,
			Required:      false,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter Idempotency-Key: %s", err))
		}
		params.IdempotencyKey = &key
	}

	return w.Handler.CreateOrder(ctx, params)
}

// EchoRouter is the part of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	Add(method, path string, handler echo.HandlerFunc, middleware ...echo.MiddlewareFunc) *echo.Route
}

var (
	anyone        = identity.NewRoleSet()
	adminOnly     = identity.NewRoleSet(identity.Admin)
	adminOrStaff  = identity.NewRoleSet(identity.Admin, identity.Staff)
	customerOnly  = identity.NewRoleSet(identity.Customer)
	anyOrderTaker = identity.NewRoleSet(identity.Customer, identity.Staff, identity.Admin)
)

// RegisterHandlers adds every operation to router. Each route checks roles
// first and then runs the extra middleware, typically contract validation.
func RegisterHandlers(router EchoRouter, si ServerInterface, middleware ...echo.MiddlewareFunc) {
	w := &ServerInterfaceWrapper{Handler: si}

	add := func(method, path string, roles identity.RoleSet, handler echo.HandlerFunc) {
		chain := append([]echo.MiddlewareFunc{RequireRoles(roles)}, middleware...)
		router.Add(method, path, handler, chain...)
	}

	add(http.MethodGet, "/orders", adminOnly, w.paged(si.ListOrders))
	add(http.MethodGet, "/orders/pending", adminOrStaff, w.paged(si.ListPendingOrders))
	add(http.MethodGet, "/orders/delivery", adminOnly, w.paged(si.ListDeliveringOrders))
	add(http.MethodGet, "/orders/paid", adminOnly, w.paged(si.ListPaidOrders))
	add(http.MethodPost, "/orders", anyOrderTaker, w.CreateOrder)
	add(http.MethodGet, "/orders/:id", anyone, w.byID("id", si.GetOrder))
	add(http.MethodDelete, "/orders/:id", adminOnly, w.byID("id", si.DeleteOrder))
	add(http.MethodPatch, "/orders/:id/paid", adminOrStaff, w.byID("id", si.PayOrder))
	add(http.MethodPatch, "/orders/:id/receive", adminOrStaff, w.byID("id", si.ReceiveOrder))

	add(http.MethodGet, "/carts", customerOnly, si.ListCartLines)
	add(http.MethodPost, "/carts", customerOnly, si.AddCartLine)
	add(http.MethodPatch, "/carts/:id", customerOnly, w.byID("id", si.ChangeCartLine))
	add(http.MethodDelete, "/carts/:id", customerOnly, w.byID("id", si.RemoveCartLine))

	add(http.MethodGet, "/menu-items", anyone, si.ListMenuItems)
	add(http.MethodPost, "/menu-items", adminOnly, si.CreateMenuItem)

	add(http.MethodGet, "/warehouse/stock", adminOrStaff, si.ListStock)
	add(http.MethodPut, "/warehouse/stock/:menuItemId", adminOrStaff, w.byID("menuItemId", si.SetStock))
}
