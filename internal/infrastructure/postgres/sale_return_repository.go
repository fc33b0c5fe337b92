package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

var _ repository.SaleReturnRepository = (*SaleReturnRepo)(nil)

// SaleReturnRepo implementación sobre PostgreSQL del registro secundario de devoluciones.
type SaleReturnRepo struct {
	q Querier
}

// NewSaleReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleReturnRepository(q Querier) *SaleReturnRepo {
	return &SaleReturnRepo{q: q}
}

// Create persiste el registro de devolución y asigna el ID generado.
func (r *SaleReturnRepo) Create(ret *entity.SaleReturn) error {
	query := `
		INSERT INTO sales_returns (sale_id, processed_by, refund_method, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	processedBy := (*string)(nil)
	if ret.ProcessedBy != "" {
		processedBy = &ret.ProcessedBy
	}
	err := r.q.QueryRow(context.Background(), query,
		ret.SaleID, processedBy, ret.RefundMethod, ret.Status, ret.Reason, ret.CreatedAt,
	).Scan(&ret.ID)
	if err != nil {
		return fmt.Errorf("create sale return: %w", err)
	}
	return nil
}

// GetBySaleID obtiene el registro de devolución de una venta. nil si no existe.
func (r *SaleReturnRepo) GetBySaleID(saleID int64) (*entity.SaleReturn, error) {
	query := `
		SELECT id, sale_id, COALESCE(processed_by, ''), refund_method, status, reason, created_at
		FROM sales_returns WHERE sale_id = $1 ORDER BY created_at DESC LIMIT 1`
	var ret entity.SaleReturn
	err := r.q.QueryRow(context.Background(), query, saleID).Scan(
		&ret.ID, &ret.SaleID, &ret.ProcessedBy, &ret.RefundMethod, &ret.Status, &ret.Reason, &ret.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale return: %w", err)
	}
	return &ret, nil
}
