package http

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ApiResponse is the body of action endpoints and of every error.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PageParams are the optional paging parameters of the order listings.
type PageParams struct {
	Page    *int    `json:"page,omitempty"`
	Size    *int    `json:"size,omitempty"`
	SortBy  *string `json:"sortBy,omitempty"`
	SortDir *string `json:"sortDir,omitempty"`
}

type CreateOrderParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

type OrderItemRequest struct {
	MenuItemID openapi_types.UUID `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID *openapi_types.UUID `json:"customerId,omitempty"`
	Items      []OrderItemRequest  `json:"items"`
	Note       string              `json:"note,omitempty"`
}

type OrderLine struct {
	MenuItemID openapi_types.UUID `json:"menuItemId"`
	Name       string             `json:"name"`
	Quantity   int                `json:"quantity"`
	UnitPrice  string             `json:"unitPrice"`
	Subtotal   string             `json:"subtotal"`
}

type Order struct {
	ID         openapi_types.UUID `json:"id"`
	CustomerID openapi_types.UUID `json:"customerId"`
	Status     string             `json:"status"`
	Note       string             `json:"note,omitempty"`
	Items      []OrderLine        `json:"items"`
	Total      string             `json:"total"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	CreatedBy  openapi_types.UUID `json:"createdBy"`
	UpdatedBy  openapi_types.UUID `json:"updatedBy"`
}

type OrderPage struct {
	Content       []Order `json:"content"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
	Last          bool    `json:"last"`
}

type MenuItem struct {
	ID    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Price string             `json:"price"`
}

type CreateMenuItemRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// CartLine mirrors a cart line with its menu item embedded.
type CartLine struct {
	ID       openapi_types.UUID `json:"id"`
	Menu     MenuItem           `json:"menu"`
	Quantity int                `json:"quantity"`
	Deleted  bool               `json:"deleted"`
}

type AddCartLineRequest struct {
	MenuItemID openapi_types.UUID `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
}

type ChangeCartLineRequest struct {
	Quantity int `json:"quantity"`
}

type Stock struct {
	MenuItemID openapi_types.UUID `json:"menuItemId"`
	Name       string             `json:"name"`
	Available  int                `json:"available"`
}

type SetStockRequest struct {
	Available int `json:"available"`
}
