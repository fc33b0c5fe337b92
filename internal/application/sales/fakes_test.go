package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los flujos de venta/devolución.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[int64]*entity.Product
	// updates registra cada UpdateStock aplicado (id → stock final).
	updates map[int64]int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[int64]*entity.Product{}, updates: map[int64]int{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error            { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdate(id int64) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) Update(p *entity.Product) error                 { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id int64, stock int) error {
	r.updates[id] = stock
	if p, ok := r.products[id]; ok {
		p.Stock = stock
	}
	return nil
}
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Count() (int, error)                               { return len(r.products), nil }
func (r *fakeProductRepo) Delete(id int64) error                             { delete(r.products, id); return nil }

type fakeSaleRepo struct {
	sales  map[int64]*entity.Sale
	items  []*entity.SaleItem
	nextID int64
	// returned registra los MarkReturned aplicados (id → notas finales).
	returned map[int64]string
}

func newFakeSaleRepo(sales ...*entity.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{sales: map[int64]*entity.Sale{}, nextID: 1, returned: map[int64]string{}}
	for _, s := range sales {
		r.sales[s.ID] = s
		if s.ID >= r.nextID {
			r.nextID = s.ID + 1
		}
	}
	return r
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	s.ID = r.nextID
	r.nextID++
	r.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	item.ID = int64(len(r.items) + 1)
	r.items = append(r.items, item)
	return nil
}

func (r *fakeSaleRepo) GetByID(id int64) (*entity.Sale, error) { return r.sales[id], nil }

func (r *fakeSaleRepo) MarkReturned(id int64, notes string) error {
	s, ok := r.sales[id]
	if !ok || !s.Status {
		// Misma semántica que el UPDATE condicional: 0 filas afectadas.
		return domain.ErrAlreadyReturned
	}
	s.Status = false
	s.Notes = notes
	r.returned[id] = notes
	return nil
}

func (r *fakeSaleRepo) List(filter repository.SaleFilter) ([]*repository.SaleListRow, error) {
	return nil, nil
}
func (r *fakeSaleRepo) Count(filter repository.SaleFilter) (int, error) { return len(r.sales), nil }

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	m.ID = int64(len(r.movements) + 1)
	r.movements = append(r.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID int64, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

func (r *fakeMovementRepo) ListByReference(reference string) ([]*entity.InventoryMovement, error) {
	out := []*entity.InventoryMovement{}
	for _, m := range r.movements {
		if m.Reference == reference {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeSaleReturnRepo struct {
	returns []*entity.SaleReturn
	fail    error
}

func (r *fakeSaleReturnRepo) Create(ret *entity.SaleReturn) error {
	if r.fail != nil {
		return r.fail
	}
	ret.ID = int64(len(r.returns) + 1)
	r.returns = append(r.returns, ret)
	return nil
}

func (r *fakeSaleReturnRepo) GetBySaleID(saleID int64) (*entity.SaleReturn, error) {
	for _, ret := range r.returns {
		if ret.SaleID == saleID {
			return ret, nil
		}
	}
	return nil, nil
}

// fakeTxRunner invoca el callback con los fakes, sin transacción real. Los
// escenarios de test validan el error antes de cualquier escritura o el
// resultado final, nunca un rollback parcial.
type fakeTxRunner struct {
	saleRepo    *fakeSaleRepo
	productRepo *fakeProductRepo
	movRepo     *fakeMovementRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return fn(r.saleRepo, r.productRepo, r.movRepo)
}
