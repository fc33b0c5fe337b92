package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Status true = efecto de venta vigente; false = devuelta.
// Una venta nunca se elimina físicamente.

// Sale representa la cabecera de una venta (un checkout completo).
// Reference es el token legible que correlaciona la venta con sus movimientos
// de inventario (antes vivía embebido en las notas; ahora es columna propia).
type Sale struct {
	ID            int64
	Reference     string
	ClientID      *int64 // opcional: venta de mostrador sin cliente
	EmployeeID    *int64 // opcional: vendedor que registró la venta
	PaymentMethod string
	VAT           decimal.Decimal // impuesto total del checkout
	Status        bool            // true = activa, false = devuelta
	Notes         string
	CreatedAt     time.Time
	Items         []SaleItem
}

// Total devuelve el gran total de la venta: suma de líneas más el IVA.
func (s *Sale) Total() decimal.Decimal {
	total := s.VAT
	for _, it := range s.Items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

// TotalItems devuelve la cantidad total de unidades vendidas.
func (s *Sale) TotalItems() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

// SaleItem representa una línea de la venta (producto, cantidad, precios).
// VATShare es la porción del IVA total prorrateada según el peso del subtotal
// de la línea sobre el subtotal del checkout.
type SaleItem struct {
	ID         int64
	SaleID     int64
	ProductID  int64
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	VATShare   decimal.Decimal
}
