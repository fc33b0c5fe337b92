package entity

import "time"

// Métodos de reembolso aceptados para una devolución.
const (
	RefundMethodCash        = "Cash"
	RefundMethodCredit      = "Credit"
	RefundMethodStoreCredit = "Store Credit"
)

// ValidRefundMethod indica si el método de reembolso es uno de los permitidos.
func ValidRefundMethod(m string) bool {
	return m == RefundMethodCash || m == RefundMethodCredit || m == RefundMethodStoreCredit
}

// SaleReturn es el registro secundario de una devolución. No es autoritativo:
// el efecto real vive en la venta (status=false) y en los movimientos de
// inventario; si este insert falla la devolución sigue siendo válida.
type SaleReturn struct {
	ID           int64
	SaleID       int64
	ProcessedBy  string // ID del usuario que procesó la devolución
	RefundMethod string
	Status       string // "Processed"
	Reason       string
	CreatedAt    time.Time
}
