package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// listFakeSaleRepo captura el filtro recibido y devuelve filas predefinidas.
type listFakeSaleRepo struct {
	fakeSaleRepo
	rows       []*repository.SaleListRow
	total      int
	lastFilter repository.SaleFilter
}

func (r *listFakeSaleRepo) List(filter repository.SaleFilter) ([]*repository.SaleListRow, error) {
	r.lastFilter = filter
	return r.rows, nil
}

func (r *listFakeSaleRepo) Count(filter repository.SaleFilter) (int, error) {
	return r.total, nil
}

func TestListSales_FiltrosYPaginacion(t *testing.T) {
	repo := &listFakeSaleRepo{
		rows: []*repository.SaleListRow{
			{ID: 1, Reference: "VT-1-a", PaymentMethod: "cash", VAT: d("3.333"), Subtotal: d("30.005"), Total: d("33.338"), TotalItems: 2, Status: true},
		},
		total: 45,
	}
	uc := NewListSalesUseCase(repo)

	clientID := int64(9)
	out, err := uc.ListSales(context.Background(), dto.ListSalesRequest{
		PageRequest: dto.PageRequest{Page: 2, Limit: 20},
		ClientID:    &clientID,
		DateFrom:    "2026-01-01",
		DateTo:      "2026-01-31",
		Status:      "active",
		Search:      "VT-1",
	})
	require.NoError(t, err)

	// El filtro llega al repo tal cual, con date_to corrido al final del día.
	assert.Equal(t, &clientID, repo.lastFilter.ClientID)
	assert.Equal(t, "active", repo.lastFilter.Status)
	assert.Equal(t, "VT-1", repo.lastFilter.Search)
	assert.Equal(t, 20, repo.lastFilter.Limit)
	assert.Equal(t, 20, repo.lastFilter.Offset)
	require.NotNil(t, repo.lastFilter.DateFrom)
	require.NotNil(t, repo.lastFilter.DateTo)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilter.DateFrom)
	assert.Equal(t, 31, repo.lastFilter.DateTo.Day(), "date_to debe seguir dentro del día 31 (inclusivo)")
	assert.Equal(t, 23, repo.lastFilter.DateTo.Hour())

	// Montos redondeados a 2 decimales en la respuesta.
	require.Len(t, out.Data, 1)
	assert.True(t, d("3.33").Equal(out.Data[0].VAT))
	assert.True(t, d("30.00").Equal(out.Data[0].Subtotal))
	assert.True(t, d("33.34").Equal(out.Data[0].Total))

	// Metadatos de paginación sobre el total filtrado.
	assert.Equal(t, 2, out.Pagination.Page)
	assert.Equal(t, 45, out.Pagination.Total)
	assert.Equal(t, 3, out.Pagination.TotalPages)
}

func TestListSales_ValoresPorDefecto(t *testing.T) {
	repo := &listFakeSaleRepo{}
	uc := NewListSalesUseCase(repo)

	out, err := uc.ListSales(context.Background(), dto.ListSalesRequest{})
	require.NoError(t, err)

	assert.Equal(t, "all", repo.lastFilter.Status)
	assert.Equal(t, 20, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
	assert.Empty(t, out.Data)
	assert.Equal(t, 1, out.Pagination.Page)
}

func TestListSales_EntradasInvalidas(t *testing.T) {
	uc := NewListSalesUseCase(&listFakeSaleRepo{})
	ctx := context.Background()

	_, err := uc.ListSales(ctx, dto.ListSalesRequest{Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListSales(ctx, dto.ListSalesRequest{DateFrom: "01/01/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListSales(ctx, dto.ListSalesRequest{DateTo: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
