package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements (movimiento manual).
type RegisterMovementRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Type      string `json:"type" validate:"required,oneof=entry exit"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Reference string `json:"reference,omitempty"`
}

// MovementResponse representación HTTP de un movimiento de inventario.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reference string    `json:"reference"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListMovementsRequest query params para GET /api/inventory/movements.
type ListMovementsRequest struct {
	PageRequest
	ProductID int64  `query:"product_id" validate:"required,gt=0"`
	DateFrom  string `query:"date_from"` // YYYY-MM-DD
	DateTo    string `query:"date_to"`   // YYYY-MM-DD
}
