package inventory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

type fakeProductRepo struct {
	products map[int64]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error               { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error)    { return r.products[id], nil }
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id int64, stock int) error {
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Count() (int, error)                               { return len(r.products), nil }
func (r *fakeProductRepo) Delete(id int64) error                             { delete(r.products, id); return nil }

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	m.ID = int64(len(r.movements) + 1)
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID int64, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	out := []*entity.InventoryMovement{}
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByReference(reference string) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

type fakeTxRunner struct {
	productRepo *fakeProductRepo
	movRepo     *fakeMovementRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return fn(nil, r.productRepo, r.movRepo)
}

func newFixture(stock int) (*RegisterMovementUseCase, *fakeProductRepo, *fakeMovementRepo) {
	productRepo := &fakeProductRepo{products: map[int64]*entity.Product{
		1: {ID: 1, SKU: "CAFE-500", Name: "Café 500g", Stock: stock},
	}}
	movRepo := &fakeMovementRepo{}
	uc := NewRegisterMovementUseCase(&fakeTxRunner{productRepo: productRepo, movRepo: movRepo})
	return uc, productRepo, movRepo
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	uc, productRepo, movRepo := newFixture(4)

	out, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		ProductID: 1, Type: entity.MovementTypeEntry, Quantity: 6, Reference: "COMPRA-77",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, productRepo.products[1].Stock)
	require.Len(t, movRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeEntry, out.Type)
	assert.Equal(t, "COMPRA-77", out.Reference)
	assert.Equal(t, "user-1", out.CreatedBy)
}

func TestRegisterMovement_SalidaRestaStock(t *testing.T) {
	uc, productRepo, _ := newFixture(4)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		ProductID: 1, Type: entity.MovementTypeExit, Quantity: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, productRepo.products[1].Stock)
}

func TestRegisterMovement_SalidaSinStock(t *testing.T) {
	uc, productRepo, movRepo := newFixture(2)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		ProductID: 1, Type: entity.MovementTypeExit, Quantity: 3,
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 2, productRepo.products[1].Stock, "el stock no debe cambiar")
	assert.Empty(t, movRepo.movements)
}

func TestRegisterMovement_ReferenciaPorDefecto(t *testing.T) {
	uc, _, movRepo := newFixture(4)

	out, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		ProductID: 1, Type: entity.MovementTypeEntry, Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.Reference, "AJ-"), "referencia autogenerada: %s", out.Reference)
	assert.Equal(t, out.Reference, movRepo.movements[0].Reference)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc, _, _ := newFixture(4)

	_, err := uc.RegisterMovement(context.Background(), "user-1", dto.RegisterMovementRequest{
		ProductID: 99, Type: entity.MovementTypeEntry, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_EntradasInvalidas(t *testing.T) {
	uc, _, _ := newFixture(4)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, "u", dto.RegisterMovementRequest{ProductID: 0, Type: entity.MovementTypeEntry, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, "u", dto.RegisterMovementRequest{ProductID: 1, Type: "transfer", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, "u", dto.RegisterMovementRequest{ProductID: 1, Type: entity.MovementTypeExit, Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_FechasInvalidas(t *testing.T) {
	uc := NewListMovementsUseCase(&fakeMovementRepo{})

	_, err := uc.ListByProduct(context.Background(), dto.ListMovementsRequest{ProductID: 1, DateFrom: "2026-13-99"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_DevuelveHistorial(t *testing.T) {
	movRepo := &fakeMovementRepo{}
	movRepo.Create(&entity.InventoryMovement{ProductID: 1, Type: entity.MovementTypeExit, Quantity: 2, Reference: "VT-1-a"})
	movRepo.Create(&entity.InventoryMovement{ProductID: 1, Type: entity.MovementTypeEntry, Quantity: 2, Reference: "DEV-1"})
	movRepo.Create(&entity.InventoryMovement{ProductID: 2, Type: entity.MovementTypeEntry, Quantity: 9, Reference: "AJ-1"})
	uc := NewListMovementsUseCase(movRepo)

	out, err := uc.ListByProduct(context.Background(), dto.ListMovementsRequest{ProductID: 1})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, entity.MovementTypeExit, out[0].Type)
	assert.Equal(t, "DEV-1", out[1].Reference)
}
