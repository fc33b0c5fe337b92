package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa un empleado del negocio (recursos humanos).
type Employee struct {
	ID        int64
	Name      string
	Position  string
	Salary    decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
