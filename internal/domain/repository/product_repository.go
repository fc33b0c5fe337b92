package repository

import "github.com/tu-usuario/gestion-pyme/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción. Devuelve nil si no existe.
	GetForUpdate(id int64) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el stock absoluto del producto (usado por los flujos de
	// venta/devolución con la fila ya bloqueada).
	UpdateStock(id int64, stock int) error
	List(limit, offset int) ([]*entity.Product, error)
	Count() (int, error)
	Delete(id int64) error
}
