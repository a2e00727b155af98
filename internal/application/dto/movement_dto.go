package dto

// SplitItemRequest transferencia de un subconjunto de campos de un item a la
// categoría sintética del estado destino.
type SplitItemRequest struct {
	SelectedFields []string `json:"selectedFields"`
	TargetStatus   string   `json:"targetStatus"` // stock | maintenance
	Reason         string   `json:"reason"`
	ReasonText     string   `json:"reasonText"`
}
