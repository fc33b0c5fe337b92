package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAlreadyReturned    = errors.New("la venta ya fue devuelta")
	ErrNoSaleItems        = errors.New("la venta no tiene líneas recuperables")

	// Clasificación de violaciones de clave foránea (código 23503 de PostgreSQL).
	ErrInvalidClientRef   = errors.New("el cliente referenciado no existe")
	ErrInvalidEmployeeRef = errors.New("el empleado referenciado no existe")
	ErrInvalidProductRef  = errors.New("el producto referenciado no existe")
)

// InsufficientStockError indica que una línea pidió más unidades de las disponibles.
// Nombra el producto ofensor y las cantidades disponible/solicitada.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = fmt.Sprintf("producto %d", e.ProductID)
	}
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d", name, e.Available, e.Requested)
}
