package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es la única fuente de verdad de unidades disponibles: nunca puede ser
// negativo y solo se muta dentro de una transacción con la fila bloqueada
// (SELECT FOR UPDATE), vía los flujos de venta/devolución o un movimiento manual.
type Product struct {
	ID        int64
	SKU       string // código único
	Name      string
	Stock     int
	Price     decimal.Decimal // precio de venta
	CreatedAt time.Time
	UpdatedAt time.Time
}
