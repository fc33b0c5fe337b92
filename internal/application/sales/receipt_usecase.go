package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// ReceiptLine línea lista para imprimir en el recibo.
type ReceiptLine struct {
	Quantity    int
	ProductName string
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// ReceiptData todo lo que el generador necesita para armar el recibo.
type ReceiptData struct {
	SaleID        int64
	Reference     string
	Date          string // dd/mm/yyyy hh:mm
	ClientName    string
	PaymentMethod string
	Returned      bool
	Lines         []ReceiptLine
	Subtotal      decimal.Decimal
	VAT           decimal.Decimal
	Total         decimal.Decimal
}

// ReceiptGenerator puerto de generación del PDF del recibo de venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data *ReceiptData) ([]byte, error)
}

// ReceiptUseCase genera el recibo PDF de una venta.
type ReceiptUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	generator   ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, productRepo: productRepo, clientRepo: clientRepo, generator: generator}
}

// DownloadReceipt arma los datos del recibo y genera el PDF.
// Retorna (pdfBytes, filename, nil) o domain.ErrNotFound si la venta no existe.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, saleID int64) ([]byte, string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	clientName := "Cliente de mostrador"
	if sale.ClientID != nil {
		if client, err := uc.clientRepo.GetByID(*sale.ClientID); err == nil && client != nil {
			clientName = client.Name
		}
	}

	subtotal := decimal.Zero
	lines := make([]ReceiptLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := fmt.Sprintf("Producto %d", item.ProductID)
		if p, err := uc.productRepo.GetByID(item.ProductID); err == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, ReceiptLine{
			Quantity:    item.Quantity,
			ProductName: name,
			UnitPrice:   item.UnitPrice.RoundBank(2),
			Total:       item.TotalPrice.RoundBank(2),
		})
		subtotal = subtotal.Add(item.TotalPrice)
	}

	data := &ReceiptData{
		SaleID:        sale.ID,
		Reference:     sale.Reference,
		Date:          sale.CreatedAt.Format("02/01/2006 15:04"),
		ClientName:    clientName,
		PaymentMethod: sale.PaymentMethod,
		Returned:      !sale.Status,
		Lines:         lines,
		Subtotal:      subtotal.RoundBank(2),
		VAT:           sale.VAT.RoundBank(2),
		Total:         subtotal.Add(sale.VAT).RoundBank(2),
	}
	pdf, err := uc.generator.GenerateReceipt(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar PDF: %w", err)
	}
	return pdf, fmt.Sprintf("recibo_%s.pdf", sale.Reference), nil
}
