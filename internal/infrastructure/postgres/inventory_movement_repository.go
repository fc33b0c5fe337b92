package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario y asigna el ID generado.
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	query := `
		INSERT INTO inventory_movements (product_id, type, quantity, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	err := r.q.QueryRow(context.Background(), query,
		movement.ProductID, movement.Type, movement.Quantity,
		movement.Reference, createdBy, movement.CreatedAt,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *InventoryMovementRepo) ListByProduct(productID int64, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, reference, created_by, created_at
		FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	return r.scanMovements(query, args...)
}

// ListByReference lista los movimientos agrupados bajo una referencia
// (la de una venta o la DEV-<sale_id> de una devolución).
func (r *InventoryMovementRepo) ListByReference(reference string) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, product_id, type, quantity, reference, created_by, created_at
		FROM inventory_movements WHERE reference = $1 ORDER BY id`
	return r.scanMovements(query, reference)
}

func (r *InventoryMovementRepo) scanMovements(query string, args ...any) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&m.Reference, &createdBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
