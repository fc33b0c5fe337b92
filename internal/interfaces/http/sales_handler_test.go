package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/application/sales"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
	apphttp "github.com/tu-usuario/gestion-pyme/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria mínimos para ejercer el handler con el caso de uso real.
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[int64]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error               { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id int64) (*entity.Product, error)    { return r.products[id], nil }
func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) UpdateStock(id int64, stock int) error {
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Count() (int, error)                               { return len(r.products), nil }
func (r *memProductRepo) Delete(id int64) error                             { delete(r.products, id); return nil }

type memSaleRepo struct {
	sales  map[int64]*entity.Sale
	nextID int64
}

func (r *memSaleRepo) Create(s *entity.Sale) error {
	r.nextID++
	s.ID = r.nextID
	r.sales[s.ID] = s
	return nil
}
func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error     { return nil }
func (r *memSaleRepo) GetByID(id int64) (*entity.Sale, error)     { return r.sales[id], nil }
func (r *memSaleRepo) MarkReturned(id int64, n string) error      { return nil }
func (r *memSaleRepo) Count(f repository.SaleFilter) (int, error) { return len(r.sales), nil }
func (r *memSaleRepo) List(f repository.SaleFilter) ([]*repository.SaleListRow, error) {
	return nil, nil
}

type memMovementRepo struct{}

func (r *memMovementRepo) Create(m *entity.InventoryMovement) error { return nil }
func (r *memMovementRepo) ListByProduct(productID int64, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByReference(reference string) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

type memTxRunner struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return fn(r.saleRepo, r.productRepo, r.movRepo)
}

func buildSalesApp() (*fiber.App, *memProductRepo) {
	productRepo := &memProductRepo{products: map[int64]*entity.Product{
		1: {ID: 1, SKU: "CAFE-500", Name: "Café 500g", Stock: 10, Price: decimal.RequireFromString("25.50")},
	}}
	saleRepo := &memSaleRepo{sales: map[int64]*entity.Sale{}}
	runner := &memTxRunner{saleRepo: saleRepo, productRepo: productRepo, movRepo: &memMovementRepo{}}

	createSale := sales.NewCreateSaleUseCase(runner)
	handler := apphttp.NewSalesHandler(createSale, nil, nil, nil)

	app := fiber.New()
	app.Post("/sales/selling", func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, testUserID)
		return c.Next()
	}, handler.Selling)
	return app, productRepo
}

// El frontend histórico consume /sales/selling esperando 200, no 201.
func TestSelling_VentaValida_Responde200(t *testing.T) {
	app, productRepo := buildSalesApp()

	body, err := json.Marshal(dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items:         []dto.SaleItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sales/selling", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CreateSaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.NotEmpty(t, out.SaleReference)
	assert.Equal(t, 8, productRepo.products[1].Stock)
}

func TestSelling_StockInsuficiente_Responde400(t *testing.T) {
	app, _ := buildSalesApp()

	body, err := json.Marshal(dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items:         []dto.SaleItemRequest{{ProductID: 1, Quantity: 99}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/sales/selling", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "INSUFFICIENT_STOCK", out.Code)
}
