package dto

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse categoría en respuestas, con el flag de reservada para
// que el cliente no ofrezca borrarla.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Reserved bool   `json:"reserved"`
	Items    int    `json:"items"`
}

// CreateFieldRequest alta de campo dinámico en una categoría. Key se deriva
// de Name si viene vacío.
type CreateFieldRequest struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Type string `json:"type"`
}

// UpdateFieldRequest renombrado o cambio de tipo de un campo.
type UpdateFieldRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ItemRequest alta o edición de item. Values es el mapa key -> valor cuyos
// keys deben existir como campos de la categoría.
type ItemRequest struct {
	CategoryID string         `json:"categoryId"`
	Status     string         `json:"status"`
	Values     map[string]any `json:"values"`
}
