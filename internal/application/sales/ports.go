package sales

import (
	"context"

	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la secuencia completa de una
// venta o devolución (chequeo de stock, líneas, decremento/incremento,
// movimientos) se aplica toda o no se aplica nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
