package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// ListSalesUseCase listado/búsqueda de ventas con filas desnormalizadas
// (nombres de cliente/empleado y agregados por venta) y paginación.
type ListSalesUseCase struct {
	saleRepo repository.SaleRepository
}

// NewListSalesUseCase construye el caso de uso.
func NewListSalesUseCase(saleRepo repository.SaleRepository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

const dateLayout = "2006-01-02"

// ListSales aplica los filtros y devuelve la página pedida junto con el total
// real de filas que satisfacen el filtro.
func (uc *ListSalesUseCase) ListSales(ctx context.Context, in dto.ListSalesRequest) (*dto.ListSalesResponse, error) {
	in.DefaultPage()
	status := in.Status
	if status == "" {
		status = "all"
	}
	if status != "active" && status != "returned" && status != "all" {
		return nil, domain.ErrInvalidInput
	}

	filter := repository.SaleFilter{
		ClientID:   in.ClientID,
		EmployeeID: in.EmployeeID,
		Status:     status,
		Search:     in.Search,
		Limit:      in.Limit,
		Offset:     in.Offset(),
	}
	if in.DateFrom != "" {
		from, err := time.Parse(dateLayout, in.DateFrom)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.DateFrom = &from
	}
	if in.DateTo != "" {
		to, err := time.Parse(dateLayout, in.DateTo)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// date_to es inclusivo: se corre al final del día.
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	rows, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	total, err := uc.saleRepo.Count(filter)
	if err != nil {
		return nil, fmt.Errorf("contar ventas: %w", err)
	}

	items := make([]dto.SaleListItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.SaleListItemDTO{
			ID:            r.ID,
			Reference:     r.Reference,
			ClientID:      r.ClientID,
			ClientName:    r.ClientName,
			EmployeeID:    r.EmployeeID,
			EmployeeName:  r.EmployeeName,
			PaymentMethod: r.PaymentMethod,
			VAT:           r.VAT.RoundBank(2),
			Status:        r.Status,
			Notes:         r.Notes,
			CreatedAt:     r.CreatedAt,
			TotalItems:    r.TotalItems,
			Subtotal:      r.Subtotal.RoundBank(2),
			Total:         r.Total.RoundBank(2),
		})
	}
	return &dto.ListSalesResponse{
		Data:       items,
		Pagination: dto.NewPageResponse(in.Page, in.Limit, total),
	}, nil
}
