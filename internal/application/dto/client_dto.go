package dto

import "time"

// CreateClientRequest body para POST /api/clients (también sirve para PUT).
type CreateClientRequest struct {
	Name     string `json:"name" validate:"required"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
}

// ClientResponse representación HTTP de un cliente.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
