package dto

// PageRequest paginación para listados (1-based).
type PageRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
}

// Offset devuelve el desplazamiento SQL equivalente a la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse calcula los metadatos a partir del total filtrado.
func NewPageResponse(page, limit, total int) PageResponse {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageResponse{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// ErrorResponse cuerpo de error HTTP. Details lleva el mensaje de bajo nivel
// cuando existe (fallos de escritura en la base de datos).
type ErrorResponse struct {
	Code    string `json:"code"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
