package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta y asigna el ID generado.
// Una FK inválida (cliente/empleado) se clasifica en su error de dominio.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (reference, client_id, employee_id, payment_method, vat, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		sale.Reference, sale.ClientID, sale.EmployeeID, sale.PaymentMethod,
		sale.VAT, sale.Status, sale.Notes, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		if fkErr := classifyForeignKey(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta y asigna el ID generado.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, total_price, vat_share)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice, item.VATShare,
	).Scan(&item.ID)
	if err != nil {
		if fkErr := classifyForeignKey(err); fkErr != nil {
			return fkErr
		}
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la venta con sus líneas. Devuelve nil si no existe.
func (r *SaleRepo) GetByID(id int64) (*entity.Sale, error) {
	query := `
		SELECT id, reference, client_id, employee_id, payment_method, vat, status, notes, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Reference, &s.ClientID, &s.EmployeeID, &s.PaymentMethod,
		&s.VAT, &s.Status, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	itemsQuery := `
		SELECT id, sale_id, product_id, quantity, unit_price, total_price, vat_share
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.TotalPrice, &it.VATShare); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}

// MarkReturned pone status=false y reemplaza las notas de la venta.
// El predicado status=true hace la actualización atómica: si otra transacción
// devolvió la venta primero, 0 filas afectadas y se reporta ErrAlreadyReturned.
func (r *SaleRepo) MarkReturned(id int64, notes string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = false, notes = $2 WHERE id = $1 AND status = true`,
		id, notes,
	)
	if err != nil {
		return fmt.Errorf("mark sale returned: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrAlreadyReturned
	}
	return nil
}

// buildSaleFilter arma la cláusula WHERE dinámica compartida por List y Count.
func buildSaleFilter(filter repository.SaleFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	pos := 1
	add := func(clause string, value any) {
		where += fmt.Sprintf(clause, pos)
		args = append(args, value)
		pos++
	}
	if filter.ClientID != nil {
		add(" AND s.client_id = $%d", *filter.ClientID)
	}
	if filter.EmployeeID != nil {
		add(" AND s.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.DateFrom != nil {
		add(" AND s.created_at >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add(" AND s.created_at <= $%d", *filter.DateTo)
	}
	switch filter.Status {
	case "active":
		where += " AND s.status = true"
	case "returned":
		where += " AND s.status = false"
	}
	if filter.Search != "" {
		if id, err := strconv.ParseInt(filter.Search, 10, 64); err == nil {
			add(" AND s.id = $%d", id)
		} else {
			add(" AND s.reference ILIKE $%d", "%"+filter.Search+"%")
		}
	}
	return where, args
}

// List devuelve filas desnormalizadas: cabecera más nombres de cliente/empleado
// y agregados sobre las líneas, ordenadas de la más reciente a la más antigua.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*repository.SaleListRow, error) {
	where, args := buildSaleFilter(filter)
	query := `
		SELECT s.id, s.reference, s.client_id, COALESCE(c.name, ''), s.employee_id, COALESCE(e.name, ''),
		       s.payment_method, s.vat, s.status, s.notes, s.created_at,
		       COALESCE(SUM(si.quantity), 0) AS total_items,
		       COALESCE(SUM(si.total_price), 0) AS subtotal,
		       COALESCE(SUM(si.total_price), 0) + s.vat AS total
		FROM sales s
		LEFT JOIN clients c ON c.id = s.client_id
		LEFT JOIN employees e ON e.id = s.employee_id
		LEFT JOIN sale_items si ON si.sale_id = s.id` +
		where +
		` GROUP BY s.id, c.name, e.name
		ORDER BY s.created_at DESC` +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*repository.SaleListRow
	for rows.Next() {
		var row repository.SaleListRow
		if err := rows.Scan(
			&row.ID, &row.Reference, &row.ClientID, &row.ClientName, &row.EmployeeID, &row.EmployeeName,
			&row.PaymentMethod, &row.VAT, &row.Status, &row.Notes, &row.CreatedAt,
			&row.TotalItems, &row.Subtotal, &row.Total,
		); err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// Count cuenta las ventas que satisfacen el filtro (total real para la paginación).
func (r *SaleRepo) Count(filter repository.SaleFilter) (int, error) {
	where, args := buildSaleFilter(filter)
	query := `SELECT count(*) FROM sales s` + where
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return total, nil
}
