package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// SaleFilter filtros para el listado/búsqueda de ventas.
// Status: "active" (status=true), "returned" (status=false) o "all".
// Search: si es numérico filtra por ID de venta; si no, por referencia.
type SaleFilter struct {
	ClientID   *int64
	EmployeeID *int64
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     string
	Search     string
	Limit      int
	Offset     int
}

// SaleListRow fila desnormalizada del listado de ventas: cabecera más nombres
// de cliente/empleado (LEFT JOIN) y agregados calculados sobre las líneas.
type SaleListRow struct {
	ID            int64
	Reference     string
	ClientID      *int64
	ClientName    string
	EmployeeID    *int64
	EmployeeName  string
	PaymentMethod string
	VAT           decimal.Decimal
	Status        bool
	Notes         string
	CreatedAt     time.Time
	TotalItems    int
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
}

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	// GetByID devuelve la venta con sus líneas cargadas. nil si no existe.
	GetByID(id int64) (*entity.Sale, error)
	// MarkReturned pone status=false y reemplaza las notas (nunca borra la fila).
	MarkReturned(id int64, notes string) error
	List(filter SaleFilter) ([]*SaleListRow, error)
	Count(filter SaleFilter) (int, error)
}
