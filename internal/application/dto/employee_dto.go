package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest body para POST /api/employees (también sirve para PUT).
type CreateEmployeeRequest struct {
	Name     string          `json:"name" validate:"required"`
	Position string          `json:"position,omitempty"`
	Salary   decimal.Decimal `json:"salary"`
	Active   *bool           `json:"active,omitempty"`
}

// EmployeeResponse representación HTTP de un empleado.
type EmployeeResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Position  string          `json:"position,omitempty"`
	Salary    decimal.Decimal `json:"salary"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
