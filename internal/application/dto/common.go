package dto

// MaxPageSize tope de first en items.
const MaxPageSize = 100

// PageRequest paginación estilo skip/first. First nil = sin límite pedido.
type PageRequest struct {
	Skip  int
	First *int
}

// Normalize acota skip y first. limit 0 = sin límite; empty indica first <= 0.
func (p PageRequest) Normalize() (offset, limit int, empty bool) {
	offset = p.Skip
	if offset < 0 {
		offset = 0
	}
	if p.First == nil {
		return offset, 0, false
	}
	limit = *p.First
	if limit <= 0 {
		return offset, 0, true
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return offset, limit, false
}

// ErrorResponse cuerpo de error HTTP fuera de GraphQL.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
