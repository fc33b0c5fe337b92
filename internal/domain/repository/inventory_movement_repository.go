package repository

import (
	"time"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
// El historial es append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByProduct(productID int64, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByReference(reference string) ([]*entity.InventoryMovement, error)
}
