package sales

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

func newSaleFixture() (*CreateSaleUseCase, *fakeSaleRepo, *fakeProductRepo, *fakeMovementRepo) {
	productRepo := newFakeProductRepo(
		&entity.Product{ID: 1, SKU: "CAFE-500", Name: "Café 500g", Stock: 10, Price: d("25.50")},
		&entity.Product{ID: 2, SKU: "AZUCAR-1K", Name: "Azúcar 1kg", Stock: 5, Price: d("8.00")},
	)
	saleRepo := newFakeSaleRepo()
	movRepo := &fakeMovementRepo{}
	uc := NewCreateSaleUseCase(&fakeTxRunner{saleRepo: saleRepo, productRepo: productRepo, movRepo: movRepo})
	return uc, saleRepo, productRepo, movRepo
}

func TestCreateSale_FlujoCompleto(t *testing.T) {
	uc, saleRepo, productRepo, movRepo := newSaleFixture()

	out, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		PaymentMethod: "cash",
		VAT:           d("10"),
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 2, UnitPrice: d("15"), TotalPrice: d("30")},
			{ProductID: 2, Quantity: 5, UnitPrice: d("14"), TotalPrice: d("70")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, out.Success)
	assert.True(t, strings.HasPrefix(out.SaleReference, "VT-"), "la referencia debe tener prefijo VT-: %s", out.SaleReference)
	require.Len(t, out.SalesCreated, 1)
	assert.Equal(t, 7, out.TotalItems)
	assert.True(t, d("110").Equal(out.TotalAmount), "gran total = subtotal + IVA, fue %s", out.TotalAmount)

	// Cabecera y líneas persistidas, con el IVA prorrateado 30/70.
	sale := saleRepo.sales[out.SalesCreated[0]]
	require.NotNil(t, sale)
	require.Len(t, saleRepo.items, 2)
	assert.True(t, d("3").Equal(saleRepo.items[0].VATShare), "IVA línea 1: %s", saleRepo.items[0].VATShare)
	assert.True(t, d("7").Equal(saleRepo.items[1].VATShare), "IVA línea 2: %s", saleRepo.items[1].VATShare)

	// Stock descontado y una salida de inventario por línea, todas con la
	// referencia de la venta.
	assert.Equal(t, 8, productRepo.products[1].Stock)
	assert.Equal(t, 0, productRepo.products[2].Stock)
	require.Len(t, movRepo.movements, 2)
	for _, m := range movRepo.movements {
		assert.Equal(t, entity.MovementTypeExit, m.Type)
		assert.Equal(t, out.SaleReference, m.Reference)
		assert.Equal(t, "user-1", m.CreatedBy)
	}
}

func TestCreateSale_StockInsuficiente_NoEscribeNada(t *testing.T) {
	uc, saleRepo, productRepo, movRepo := newSaleFixture()

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: 2, Quantity: 6, UnitPrice: d("8"), TotalPrice: d("48")}, // stock 5
		},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	// El chequeo corre antes de cualquier escritura.
	assert.Empty(t, saleRepo.sales)
	assert.Empty(t, saleRepo.items)
	assert.Empty(t, movRepo.movements)
	assert.Equal(t, 5, productRepo.products[2].Stock)
}

func TestCreateSale_LineasRepetidasDelMismoProducto(t *testing.T) {
	uc, _, productRepo, _ := newSaleFixture()

	// Dos líneas de 3 unidades del producto 2 (stock 5): la segunda debe
	// fallar porque la primera ya consumió parte del stock bloqueado.
	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: 2, Quantity: 3, UnitPrice: d("8"), TotalPrice: d("24")},
			{ProductID: 2, Quantity: 3, UnitPrice: d("8"), TotalPrice: d("24")},
		},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available, "la segunda línea ve el stock ya consumido por la primera")
	assert.Equal(t, 5, productRepo.products[2].Stock)
}

func TestCreateSale_ProductoInexistente_StockCero(t *testing.T) {
	uc, _, _, _ := newSaleFixture()

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: 99, Quantity: 1, UnitPrice: d("5"), TotalPrice: d("5")},
		},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 0, stockErr.Available)
}

func TestCreateSale_ReconstruyeTotalPriceSiVieneEnCero(t *testing.T) {
	uc, saleRepo, _, _ := newSaleFixture()

	out, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		PaymentMethod: "card",
		Items: []dto.SaleItemRequest{
			{ProductID: 1, Quantity: 3, UnitPrice: d("25.50")},
		},
	})
	require.NoError(t, err)
	require.Len(t, saleRepo.items, 1)
	assert.True(t, d("76.50").Equal(saleRepo.items[0].TotalPrice), "totalPrice reconstruido: %s", saleRepo.items[0].TotalPrice)
	assert.True(t, d("76.50").Equal(out.TotalAmount))
}

func TestCreateSale_EntradasInvalidas(t *testing.T) {
	uc, _, _, _ := newSaleFixture()
	ctx := context.Background()

	cases := map[string]dto.CreateSaleRequest{
		"sin método de pago": {Items: []dto.SaleItemRequest{{ProductID: 1, Quantity: 1, UnitPrice: d("1")}}},
		"sin líneas":         {PaymentMethod: "cash"},
		"cantidad cero":      {PaymentMethod: "cash", Items: []dto.SaleItemRequest{{ProductID: 1, Quantity: 0, UnitPrice: d("1")}}},
		"IVA negativo":       {PaymentMethod: "cash", VAT: d("-1"), Items: []dto.SaleItemRequest{{ProductID: 1, Quantity: 1, UnitPrice: d("1")}}},
		"precio negativo":    {PaymentMethod: "cash", Items: []dto.SaleItemRequest{{ProductID: 1, Quantity: 1, UnitPrice: d("-1")}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateSale(ctx, "user-1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
