// Package http exposes the café API over echo. Requests pass identity
// resolution, the per-route role check and contract validation before they
// reach a command or query handler.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/domain/model/identity"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/services"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// CommandHandler runs a command that yields no result.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// Handler runs a command or query that yields a result.
type Handler[Q, R any] interface {
	Handle(ctx context.Context, q Q) (R, error)
}

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	CreateOrder  Handler[commands.CreateOrderCommand, commands.CreateOrderResult]
	PayOrder     CommandHandler[commands.PayOrderCommand]
	ReceiveOrder Handler[commands.ReceiveOrderCommand, services.Availability]
	DeleteOrder  CommandHandler[commands.DeleteOrderCommand]

	AddCartLine    Handler[commands.AddCartLineCommand, kernel.UUID]
	ChangeCartLine CommandHandler[commands.ChangeCartLineCommand]
	RemoveCartLine CommandHandler[commands.RemoveCartLineCommand]

	CreateMenuItem CommandHandler[commands.CreateMenuItemCommand]
	SetStock       CommandHandler[commands.SetStockCommand]

	GetOrder      Handler[queries.GetOrderQuery, queries.OrderView]
	ListOrders    Handler[queries.ListOrdersQuery, queries.Page[queries.OrderView]]
	ListCartLines Handler[queries.ListCartLinesQuery, []queries.CartLineView]
	ListMenuItems Handler[queries.ListMenuItemsQuery, []queries.MenuItemView]
	ListStock     Handler[queries.ListStockQuery, []queries.StockView]
}

// Server implements ServerInterface.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewServer creates a server. m may be nil.
func NewServer(handlers Handlers, logger *slog.Logger, m *metrics.Metrics) *Server {
	return &Server{handlers: handlers, logger: logger, metrics: m}
}

var _ ServerInterface = (*Server)(nil)

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params PageParams) error {
	return s.listOrders(ctx, order.Unknown, params)
}

// ListPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) ListPendingOrders(ctx echo.Context, params PageParams) error {
	return s.listOrders(ctx, order.Pending, params)
}

// ListDeliveringOrders handles GET /api/v1/orders/delivery.
func (s *Server) ListDeliveringOrders(ctx echo.Context, params PageParams) error {
	return s.listOrders(ctx, order.Delivering, params)
}

// ListPaidOrders handles GET /api/v1/orders/paid.
func (s *Server) ListPaidOrders(ctx echo.Context, params PageParams) error {
	return s.listOrders(ctx, order.Paid, params)
}

func (s *Server) listOrders(ctx echo.Context, status order.Status, params PageParams) error {
	request, err := pageRequest(params)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(status, request)
	if err != nil {
		return err
	}

	page, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	content := make([]Order, 0, len(page.Content))
	for _, v := range page.Content {
		content = append(content, toOrder(v))
	}

	return ctx.JSON(http.StatusOK, OrderPage{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Last:          page.Last,
	})
}

func pageRequest(params PageParams) (queries.PageRequest, error) {
	page, size := 0, queries.DefaultPageSize
	var sortBy, sortDir string

	if params.Page != nil {
		page = *params.Page
	}
	if params.Size != nil {
		size = *params.Size
	}
	if params.SortBy != nil {
		sortBy = *params.SortBy
	}
	if params.SortDir != nil {
		sortDir = *params.SortDir
	}

	return queries.NewPageRequest(page, size, sortBy, sortDir)
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderQuery(orderID, PrincipalFrom(ctx))
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(view))
}

// CreateOrder handles POST /api/v1/orders. Customers order for themselves;
// staff and admins may name the customer they order for.
func (s *Server) CreateOrder(ctx echo.Context, params CreateOrderParams) error {
	principal := PrincipalFrom(ctx)

	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	customerID := principal.UserID()
	if body.CustomerID != nil {
		requested, err := kernel.UUIDFromBytes(body.CustomerID[:])
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("customerId", err)
		}
		if !identity.CanActFor(principal, requested) {
			return identity.ErrForbidden
		}
		customerID = requested
	}

	items := make([]commands.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		menuItemID, err := kernel.UUIDFromBytes(item.MenuItemID[:])
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("menuItemId", err)
		}
		quantity, err := kernel.NewQuantity(item.Quantity)
		if err != nil {
			return err
		}
		items = append(items, commands.OrderItem{MenuItemID: menuItemID, Quantity: quantity})
	}

	var key string
	if params.IdempotencyKey != nil {
		key = *params.IdempotencyKey
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, principal.UserID(), items, body.Note, key)
	if err != nil {
		return err
	}

	result, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if !errors.Is(err, commands.ErrIdempotencyKeyNotStored) {
			return err
		}
		s.logger.WarnContext(ctx.Request().Context(), "order created without idempotency record",
			slog.String("order_id", result.OrderID.String()),
			slog.Any("error", err),
		)
	}

	ctx.Response().Header().Set(echo.HeaderLocation, location(ctx, result.OrderID))
	return ctx.JSON(http.StatusCreated, ApiResponse{Success: true, Message: "Order created successfully"})
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// PayOrder handles PATCH /api/v1/orders/{id}/paid.
func (s *Server) PayOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewPayOrderCommand(orderID, PrincipalFrom(ctx).UserID())
	if err != nil {
		return err
	}

	if err = s.handlers.PayOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ApiResponse{Success: true, Message: "Pay successfully"})
}

// ReceiveOrder handles PATCH /api/v1/orders/{id}/receive. A warehouse
// shortage fails the order and answers 500 with success=false.
func (s *Server) ReceiveOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewReceiveOrderCommand(orderID, PrincipalFrom(ctx).UserID())
	if err != nil {
		return err
	}

	result, err := s.handlers.ReceiveOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	switch r := result.(type) {
	case services.Available:
		s.countReceive("available")
		return ctx.JSON(http.StatusOK, ApiResponse{Success: true, Message: "Delivering"})
	case services.Unavailable:
		s.countReceive("unavailable")
		shortages := make([]string, 0, len(r.Shortages))
		for _, sh := range r.Shortages {
			shortages = append(shortages, sh.String())
		}
		s.logger.InfoContext(ctx.Request().Context(), "order failed on warehouse check",
			slog.String("order_id", orderID.String()),
			slog.String("shortages", strings.Join(shortages, "; ")),
		)
		return ctx.JSON(http.StatusInternalServerError, ApiResponse{Success: false, Message: "Failed"})
	default:
		return errors.New("unexpected warehouse check result")
	}
}

func (s *Server) countReceive(outcome string) {
	if s.metrics != nil {
		s.metrics.ReceiveOutcome.WithLabelValues(outcome).Inc()
	}
}

// ListCartLines handles GET /api/v1/carts.
func (s *Server) ListCartLines(ctx echo.Context) error {
	query, err := queries.NewListCartLinesQuery(PrincipalFrom(ctx).UserID())
	if err != nil {
		return err
	}

	lines, err := s.handlers.ListCartLines.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]CartLine, 0, len(lines))
	for _, l := range lines {
		response = append(response, CartLine{
			ID:       l.ID.Bytes(),
			Menu:     toMenuItem(l.MenuItem),
			Quantity: l.Quantity,
			Deleted:  l.Deleted,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// AddCartLine handles POST /api/v1/carts.
func (s *Server) AddCartLine(ctx echo.Context) error {
	var body AddCartLineRequest
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	menuItemID, err := kernel.UUIDFromBytes(body.MenuItemID[:])
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("menuItemId", err)
	}
	quantity, err := kernel.NewQuantity(body.Quantity)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddCartLineCommand(kernel.NewUUID(), PrincipalFrom(ctx).UserID(), menuItemID, quantity)
	if err != nil {
		return err
	}

	lineID, err := s.handlers.AddCartLine.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderLocation, location(ctx, lineID))
	return ctx.JSON(http.StatusCreated, ApiResponse{Success: true, Message: "Added to cart"})
}

// ChangeCartLine handles PATCH /api/v1/carts/{id}.
func (s *Server) ChangeCartLine(ctx echo.Context, id openapi_types.UUID) error {
	lineID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	var body ChangeCartLineRequest
	if err = ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	quantity, err := kernel.NewQuantity(body.Quantity)
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeCartLineCommand(lineID, PrincipalFrom(ctx).UserID(), quantity)
	if err != nil {
		return err
	}

	if err = s.handlers.ChangeCartLine.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ApiResponse{Success: true, Message: "Quantity changed"})
}

// RemoveCartLine handles DELETE /api/v1/carts/{id}.
func (s *Server) RemoveCartLine(ctx echo.Context, id openapi_types.UUID) error {
	lineID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return err
	}

	cmd, err := commands.NewRemoveCartLineCommand(lineID, PrincipalFrom(ctx).UserID())
	if err != nil {
		return err
	}

	if err = s.handlers.RemoveCartLine.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListMenuItems handles GET /api/v1/menu-items.
func (s *Server) ListMenuItems(ctx echo.Context) error {
	items, err := s.handlers.ListMenuItems.Handle(ctx.Request().Context(), queries.NewListMenuItemsQuery())
	if err != nil {
		return err
	}

	response := make([]MenuItem, 0, len(items))
	for _, item := range items {
		response = append(response, toMenuItem(item))
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateMenuItem handles POST /api/v1/menu-items.
func (s *Server) CreateMenuItem(ctx echo.Context) error {
	var body CreateMenuItemRequest
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	price, err := kernel.MoneyFromString(body.Price)
	if err != nil {
		return err
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewCreateMenuItemCommand(itemID, body.Name, price)
	if err != nil {
		return err
	}

	if err = s.handlers.CreateMenuItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderLocation, location(ctx, itemID))
	return ctx.JSON(http.StatusCreated, ApiResponse{Success: true, Message: "Menu item created successfully"})
}

// ListStock handles GET /api/v1/warehouse/stock.
func (s *Server) ListStock(ctx echo.Context) error {
	stock, err := s.handlers.ListStock.Handle(ctx.Request().Context(), queries.NewListStockQuery())
	if err != nil {
		return err
	}

	response := make([]Stock, 0, len(stock))
	for _, v := range stock {
		response = append(response, Stock{
			MenuItemID: v.MenuItemID.Bytes(),
			Name:       v.Name,
			Available:  v.Available,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// SetStock handles PUT /api/v1/warehouse/stock/{menuItemId}.
func (s *Server) SetStock(ctx echo.Context, menuItemID openapi_types.UUID) error {
	itemID, err := kernel.UUIDFromBytes(menuItemID[:])
	if err != nil {
		return err
	}

	var body SetStockRequest
	if err = ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	cmd, err := commands.NewSetStockCommand(itemID, body.Available)
	if err != nil {
		return err
	}

	if err = s.handlers.SetStock.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ApiResponse{Success: true, Message: "Stock updated"})
}

// location builds the URL of a resource created under the request path.
func location(ctx echo.Context, id kernel.UUID) string {
	return strings.TrimSuffix(ctx.Request().URL.Path, "/") + "/" + id.String()
}

func toOrder(v queries.OrderView) Order {
	items := make([]OrderLine, 0, len(v.Items))
	for _, l := range v.Items {
		items = append(items, OrderLine{
			MenuItemID: l.MenuItemID.Bytes(),
			Name:       l.Name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice.String(),
			Subtotal:   l.UnitPrice.Decimal().Mul(decimal.NewFromInt(int64(l.Quantity))).StringFixed(2),
		})
	}

	return Order{
		ID:         v.ID.Bytes(),
		CustomerID: v.CustomerID.Bytes(),
		Status:     v.Status.String(),
		Note:       v.Note,
		Items:      items,
		Total:      v.Total.String(),
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
		CreatedBy:  v.CreatedBy.Bytes(),
		UpdatedBy:  v.UpdatedBy.Bytes(),
	}
}

func toMenuItem(v queries.MenuItemView) MenuItem {
	return MenuItem{
		ID:    v.ID.Bytes(),
		Name:  v.Name,
		Price: v.Price.String(),
	}
}
