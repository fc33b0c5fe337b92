package entity

import "time"

// Client representa un cliente del negocio.
type Client struct {
	ID        int64
	Name      string
	Document  string // NIT o cédula
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
