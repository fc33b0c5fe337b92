package repository

import "github.com/tu-usuario/gestion-pyme/internal/domain/entity"

// SaleReturnRepository define el puerto de persistencia para el registro
// secundario de devoluciones (best-effort, no autoritativo).
type SaleReturnRepository interface {
	Create(ret *entity.SaleReturn) error
	GetBySaleID(saleID int64) (*entity.SaleReturn, error)
}
