package dto

// PageRequest paginación opcional para listados. Limit 0 devuelve todos los elementos.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// MaxPageLimit tope de elementos por página.
const MaxPageLimit = 500

// DefaultPage corrige valores fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Bounds índices [from, to) de la página sobre n elementos.
func (p PageRequest) Bounds(n int) (from, to int) {
	from = min(p.Offset, n)
	to = n
	if p.Limit > 0 {
		to = min(from+p.Limit, n)
	}
	return from, to
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
