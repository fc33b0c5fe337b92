package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU   string          `json:"sku" validate:"required"`
	Name  string          `json:"name" validate:"required"`
	Stock int             `json:"stock" validate:"omitempty,min=0"`
	Price decimal.Decimal `json:"price"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// El stock no se actualiza por aquí: solo vía ventas, devoluciones o movimientos.
type UpdateProductRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Stock     int             `json:"stock"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ListProductsResponse listado paginado de productos.
type ListProductsResponse struct {
	Data       []ProductResponse `json:"data"`
	Pagination PageResponse      `json:"pagination"`
}
