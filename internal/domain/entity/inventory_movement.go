package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry = "entry" // entrada: aumenta stock (devoluciones, compras)
	MovementTypeExit  = "exit"  // salida: reduce stock (ventas)
)

// InventoryMovement es el registro de auditoría de un cambio de stock.
// Append-only: nunca se actualiza ni se elimina. Reference agrupa los
// movimientos de una venta (su Reference) o de una devolución (DEV-<sale_id>).
type InventoryMovement struct {
	ID        int64
	ProductID int64
	Type      string // entry | exit
	Quantity  int    // siempre positivo; el signo lo da Type
	Reference string
	CreatedBy string // ID del usuario que originó el movimiento
	CreatedAt time.Time
}
