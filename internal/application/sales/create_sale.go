package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// CreateSaleUseCase registra un checkout completo: valida stock, crea la venta
// con sus líneas (IVA prorrateado), descuenta stock y registra una salida de
// inventario por línea. Toda la secuencia corre en una sola transacción con
// las filas de producto bloqueadas (SELECT FOR UPDATE): si algo falla no queda
// estado parcialmente aplicado, y dos ventas concurrentes del mismo producto
// no pueden sobrevender.
type CreateSaleUseCase struct {
	txRunner TxRunner
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(txRunner TxRunner) *CreateSaleUseCase {
	return &CreateSaleUseCase{txRunner: txRunner}
}

// newSaleReference genera el token único legible que correlaciona la venta con
// sus movimientos de inventario. Formato: VT-<timestamp>-<fragmento aleatorio>.
func newSaleReference(now time.Time) string {
	frag := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("VT-%d-%s", now.Unix(), frag)
}

// CreateSale ejecuta el flujo de venta. Devuelve la referencia compartida, el
// ID de la venta creada, el total de unidades y el gran total (líneas + IVA).
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if strings.TrimSpace(in.PaymentMethod) == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.VAT.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	lineTotals := make([]decimal.Decimal, len(in.Items))
	subtotal := decimal.Zero
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID <= 0 || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.LessThan(decimal.Zero) || item.TotalPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		// El front manda totalPrice; si viene en cero se reconstruye.
		if item.TotalPrice.IsZero() {
			item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		lineTotals[i] = item.TotalPrice
		subtotal = subtotal.Add(item.TotalPrice)
	}
	vatShares := prorateVAT(in.VAT, lineTotals)

	now := time.Now()
	sale := &entity.Sale{
		Reference:     newSaleReference(now),
		ClientID:      in.ClientID,
		EmployeeID:    in.EmployeeID,
		PaymentMethod: in.PaymentMethod,
		VAT:           in.VAT,
		Status:        true,
		Notes:         in.Notes,
		CreatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		// 1) Bloquear cada producto y validar stock antes de cualquier escritura.
		// remaining acumula lo consumido por líneas repetidas del mismo producto
		// para que el invariante stock >= 0 se sostenga también en ese caso.
		products := make(map[int64]*entity.Product)
		remaining := make(map[int64]int)
		for _, item := range in.Items {
			p, ok := products[item.ProductID]
			if !ok {
				var err error
				p, err = productRepo.GetForUpdate(item.ProductID)
				if err != nil {
					return err
				}
				stock := 0
				if p != nil {
					stock = p.Stock
				} else {
					// Producto inexistente en el chequeo: se trata como stock cero.
					p = &entity.Product{ID: item.ProductID}
				}
				products[item.ProductID] = p
				remaining[item.ProductID] = stock
			}
			if item.Quantity > remaining[item.ProductID] {
				return &domain.InsufficientStockError{
					ProductID:   item.ProductID,
					ProductName: p.Name,
					Available:   remaining[item.ProductID],
					Requested:   item.Quantity,
				}
			}
			remaining[item.ProductID] -= item.Quantity
		}

		// 2) Cabecera y líneas. El repo clasifica violaciones de FK
		// (cliente/empleado/producto) en errores de dominio distinguibles.
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for i := range in.Items {
			item := &in.Items[i]
			line := &entity.SaleItem{
				SaleID:     sale.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: item.TotalPrice,
				VATShare:   vatShares[i],
			}
			if err := saleRepo.CreateItem(line); err != nil {
				return fmt.Errorf("línea para producto %d: %w", item.ProductID, err)
			}
			sale.Items = append(sale.Items, *line)
		}

		// 3) Descontar stock (una vez por producto) y registrar la salida de
		// inventario de cada línea bajo la referencia compartida.
		for id, p := range products {
			if err := productRepo.UpdateStock(id, remaining[id]); err != nil {
				return fmt.Errorf("descontar stock del producto %d: %w", id, err)
			}
			p.Stock = remaining[id]
		}
		for _, item := range in.Items {
			mov := &entity.InventoryMovement{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeExit,
				Quantity:  item.Quantity,
				Reference: sale.Reference,
				CreatedBy: userID,
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return fmt.Errorf("movimiento de salida del producto %d: %w", item.ProductID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateSaleResponse{
		Success:       true,
		SaleReference: sale.Reference,
		SalesCreated:  []int64{sale.ID},
		TotalItems:    sale.TotalItems(),
		TotalAmount:   subtotal.Add(in.VAT).RoundBank(2),
		Message:       fmt.Sprintf("venta %s registrada con %d líneas", sale.Reference, len(in.Items)),
	}, nil
}
