package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// ReturnSaleUseCase procesa la devolución de una venta: repone el stock de
// cada línea original, registra una entrada de inventario por línea, marca la
// venta como devuelta y deja un registro secundario best-effort en
// sales_returns. La reposición de stock, los movimientos y el cambio de estado
// corren en una sola transacción; el registro secundario va después del commit
// y su fallo solo se loguea.
//
// No es idempotente a propósito: una segunda devolución de la misma venta se
// rechaza con ErrAlreadyReturned para no duplicar el crédito de stock.
type ReturnSaleUseCase struct {
	txRunner   TxRunner
	saleRepo   repository.SaleRepository
	returnRepo repository.SaleReturnRepository
}

// NewReturnSaleUseCase construye el caso de uso.
func NewReturnSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, returnRepo repository.SaleReturnRepository) *ReturnSaleUseCase {
	return &ReturnSaleUseCase{txRunner: txRunner, saleRepo: saleRepo, returnRepo: returnRepo}
}

// returnNotes arma las notas finales de la venta devuelta: notas originales
// más el motivo y la fecha legible de la devolución.
func returnNotes(original, reason string, at time.Time) string {
	suffix := fmt.Sprintf("DEVOLUCIÓN: %s (%s)", reason, at.Format("2006-01-02 15:04"))
	if strings.TrimSpace(original) == "" {
		return suffix
	}
	return original + " | " + suffix
}

// ReturnSale ejecuta el flujo de devolución.
func (uc *ReturnSaleUseCase) ReturnSale(ctx context.Context, userID string, in dto.ReturnSaleRequest) (*dto.ReturnSaleData, error) {
	if in.SaleID <= 0 || strings.TrimSpace(in.Reason) == "" {
		return nil, domain.ErrInvalidInput
	}
	refund := in.RefundMethod
	if refund == "" {
		refund = entity.RefundMethodStoreCredit
	}
	if !entity.ValidRefundMethod(refund) {
		return nil, domain.ErrInvalidInput
	}

	sale, err := uc.saleRepo.GetByID(in.SaleID)
	if err != nil {
		return nil, fmt.Errorf("obtener venta %d: %w", in.SaleID, err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !sale.Status {
		return nil, domain.ErrAlreadyReturned
	}
	if len(sale.Items) == 0 {
		return nil, domain.ErrNoSaleItems
	}

	now := time.Now()
	reference := fmt.Sprintf("DEV-%d", sale.ID)

	var updates []dto.StockUpdateDTO
	movements := 0
	itemsReturned := 0

	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		updates = updates[:0]
		movements = 0
		itemsReturned = 0

		for _, item := range sale.Items {
			if item.ProductID == 0 || item.Quantity <= 0 {
				log.Warn().Int64("sale_id", sale.ID).Int64("product_id", item.ProductID).
					Msg("línea de venta incompleta, omitida en la devolución")
				continue
			}
			p, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				// Fallo leyendo/bloqueando stock: aborta toda la devolución.
				return fmt.Errorf("stock del producto %d: %w", item.ProductID, err)
			}
			if p == nil {
				// Producto ya no existe: se omite la línea y se continúa.
				log.Error().Int64("sale_id", sale.ID).Int64("product_id", item.ProductID).
					Msg("producto inexistente al devolver, línea omitida")
				continue
			}
			prevStock := p.Stock
			newStock := prevStock + item.Quantity
			if err := productRepo.UpdateStock(p.ID, newStock); err != nil {
				return fmt.Errorf("reponer stock del producto %d: %w", p.ID, err)
			}
			mov := &entity.InventoryMovement{
				ProductID: p.ID,
				Type:      entity.MovementTypeEntry,
				Quantity:  item.Quantity,
				Reference: reference,
				CreatedBy: userID,
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return fmt.Errorf("movimiento de entrada del producto %d: %w", p.ID, err)
			}
			updates = append(updates, dto.StockUpdateDTO{
				ProductID:     p.ID,
				PreviousStock: prevStock,
				NewStock:      newStock,
				Quantity:      item.Quantity,
			})
			movements++
			itemsReturned += item.Quantity
		}

		return saleRepo.MarkReturned(sale.ID, returnNotes(sale.Notes, in.Reason, now))
	})
	if err != nil {
		return nil, err
	}

	// Registro secundario best-effort: si falla, la devolución ya es válida
	// (stock repuesto y venta marcada); solo se deja constancia en el log.
	ret := &entity.SaleReturn{
		SaleID:       sale.ID,
		ProcessedBy:  userID,
		RefundMethod: refund,
		Status:       "Processed",
		Reason:       in.Reason,
		CreatedAt:    now,
	}
	if err := uc.returnRepo.Create(ret); err != nil {
		log.Warn().Err(err).Int64("sale_id", sale.ID).
			Msg("no se pudo guardar el registro secundario de la devolución")
	}

	return &dto.ReturnSaleData{
		SaleID:              sale.ID,
		ReturnDate:          now,
		RefundMethod:        refund,
		StockUpdates:        updates,
		InventoryMovements:  movements,
		TotalItemsReturned:  itemsReturned,
		TotalAmountReturned: sale.Total().RoundBank(2),
		Reason:              in.Reason,
		ProductsProcessed:   len(updates),
	}, nil
}
