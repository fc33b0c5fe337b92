package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// classifyForeignKey traduce una violación de clave foránea (23503) al error
// de dominio según la referencia inválida (cliente, empleado o producto),
// mirando el nombre del constraint. Si el error no es una violación de FK
// devuelve nil y el caller debe propagar el error original.
func classifyForeignKey(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" { // foreign_key_violation
		return nil
	}
	constraint := strings.ToLower(pgErr.ConstraintName)
	switch {
	case strings.Contains(constraint, "client"):
		return domain.ErrInvalidClientRef
	case strings.Contains(constraint, "employee"):
		return domain.ErrInvalidEmployeeRef
	case strings.Contains(constraint, "product"):
		return domain.ErrInvalidProductRef
	}
	return nil
}
