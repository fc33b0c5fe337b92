package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de un checkout.
type SaleItemRequest struct {
	ProductID  int64           `json:"product_id" validate:"required,gt=0"`
	Quantity   int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// CreateSaleRequest body para POST /sales/selling.
type CreateSaleRequest struct {
	ClientID      *int64            `json:"client_id,omitempty"`
	EmployeeID    *int64            `json:"employee_id,omitempty"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	VAT           decimal.Decimal   `json:"vat"`
	Notes         string            `json:"notes,omitempty"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateSaleResponse respuesta de una venta creada.
type CreateSaleResponse struct {
	Success       bool            `json:"success"`
	SaleReference string          `json:"sale_reference"`
	SalesCreated  []int64         `json:"sales_created"`
	TotalItems    int             `json:"total_items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Message       string          `json:"message"`
}

// ReturnSaleRequest body para POST /sales/sales_returns.
// RefundMethod conserva el nombre de campo histórico "refound_method".
type ReturnSaleRequest struct {
	SaleID       int64  `json:"sale_id" validate:"required,gt=0"`
	Reason       string `json:"reason" validate:"required"`
	RefundMethod string `json:"refound_method,omitempty"`
}

// StockUpdateDTO ajuste de stock aplicado a un producto durante una devolución.
type StockUpdateDTO struct {
	ProductID     int64 `json:"product_id"`
	PreviousStock int   `json:"previous_stock"`
	NewStock      int   `json:"new_stock"`
	Quantity      int   `json:"quantity"`
}

// ReturnSaleData detalle de la devolución procesada.
type ReturnSaleData struct {
	SaleID              int64            `json:"sale_id"`
	ReturnDate          time.Time        `json:"return_date"`
	RefundMethod        string           `json:"refound_method"`
	StockUpdates        []StockUpdateDTO `json:"stock_updates"`
	InventoryMovements  int              `json:"inventory_movements"`
	TotalItemsReturned  int              `json:"total_items_returned"`
	TotalAmountReturned decimal.Decimal  `json:"total_amount_returned"`
	Reason              string           `json:"reason"`
	ProductsProcessed   int              `json:"products_processed"`
}

// ReturnSaleResponse respuesta de una devolución procesada.
type ReturnSaleResponse struct {
	Success bool           `json:"success"`
	Data    ReturnSaleData `json:"data"`
}

// ListSalesRequest query params para GET /sales/sales_returns.
type ListSalesRequest struct {
	PageRequest
	ClientID   *int64 `query:"client_id"`
	EmployeeID *int64 `query:"employee_id"`
	DateFrom   string `query:"date_from"` // YYYY-MM-DD
	DateTo     string `query:"date_to"`   // YYYY-MM-DD
	Status     string `query:"status" validate:"omitempty,oneof=active returned all"`
	Search     string `query:"search"`
}

// SaleListItemDTO fila desnormalizada del listado de ventas.
type SaleListItemDTO struct {
	ID            int64           `json:"id"`
	Reference     string          `json:"reference"`
	ClientID      *int64          `json:"client_id,omitempty"`
	ClientName    string          `json:"client_name"`
	EmployeeID    *int64          `json:"employee_id,omitempty"`
	EmployeeName  string          `json:"employee_name"`
	PaymentMethod string          `json:"payment_method"`
	VAT           decimal.Decimal `json:"vat"`
	Status        bool            `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	TotalItems    int             `json:"total_items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Total         decimal.Decimal `json:"total"`
}

// ListSalesResponse listado paginado de ventas.
type ListSalesResponse struct {
	Data       []SaleListItemDTO `json:"data"`
	Pagination PageResponse      `json:"pagination"`
}
