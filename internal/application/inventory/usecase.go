package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Misma forma que sales.TxRunner; la implementa
// el mismo postgres.TxRunner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}

// RegisterMovementUseCase registra un movimiento manual de inventario
// (entrada o salida) de forma transaccional, con la fila del producto
// bloqueada (SELECT FOR UPDATE). Usa el mismo motor de stock que los flujos
// de venta y devolución.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// RegisterMovement aplica el movimiento y devuelve su representación.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID <= 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeEntry && in.Type != entity.MovementTypeExit {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	reference := in.Reference
	if reference == "" {
		reference = fmt.Sprintf("AJ-%d", now.Unix())
	}

	var out *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(
		_ repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		p, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		newStock := p.Stock
		switch in.Type {
		case entity.MovementTypeEntry:
			newStock += in.Quantity
		case entity.MovementTypeExit:
			if in.Quantity > p.Stock {
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   p.Stock,
					Requested:   in.Quantity,
				}
			}
			newStock -= in.Quantity
		}
		if err := productRepo.UpdateStock(p.ID, newStock); err != nil {
			return fmt.Errorf("actualizar stock del producto %d: %w", p.ID, err)
		}
		mov := &entity.InventoryMovement{
			ProductID: p.ID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			Reference: reference,
			CreatedBy: userID,
			CreatedAt: now,
		}
		if err := movRepo.Create(mov); err != nil {
			return fmt.Errorf("crear movimiento: %w", err)
		}
		out = &dto.MovementResponse{
			ID:        mov.ID,
			ProductID: mov.ProductID,
			Type:      mov.Type,
			Quantity:  mov.Quantity,
			Reference: mov.Reference,
			CreatedBy: mov.CreatedBy,
			CreatedAt: mov.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovementsUseCase listado del historial de movimientos de un producto.
type ListMovementsUseCase struct {
	movRepo repository.InventoryMovementRepository
}

// NewListMovementsUseCase construye el caso de uso.
func NewListMovementsUseCase(movRepo repository.InventoryMovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movRepo: movRepo}
}

// ListByProduct devuelve los movimientos de un producto en un rango de fechas.
func (uc *ListMovementsUseCase) ListByProduct(ctx context.Context, in dto.ListMovementsRequest) ([]dto.MovementResponse, error) {
	if in.ProductID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()

	var from, to *time.Time
	if in.DateFrom != "" {
		t, err := time.Parse("2006-01-02", in.DateFrom)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		from = &t
	}
	if in.DateTo != "" {
		t, err := time.Parse("2006-01-02", in.DateTo)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	movs, err := uc.movRepo.ListByProduct(in.ProductID, from, to, in.Limit, in.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			CreatedBy: m.CreatedBy,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
