package entity

import "time"

// Acciones auditables en el historial de movimientos.
const (
	ActionCreate       = "create"
	ActionEdit         = "edit"
	ActionTransfer     = "transfer"
	ActionStatusChange = "status_change"
	ActionDelete       = "delete"
	ActionReturn       = "return"
	ActionFieldSplit   = "field_split"
)

// Motivos de movimiento.
const (
	ReasonCorrection      = "correction"
	ReasonTransfer        = "transfer"
	ReasonToStock         = "to_stock"
	ReasonToMaintenance   = "to_maintenance"
	ReasonFromStock       = "from_stock"
	ReasonFromMaintenance = "from_maintenance"
	ReasonWarranty        = "warranty"
	ReasonIrreparable     = "irreparable"
	ReasonUpgrade         = "upgrade"
	ReasonOther           = "other"
)

// FieldChange registra el valor de un campo antes y después de un movimiento.
// En un field_split NewValue es igual a OldValue: el registro documenta qué
// valor se movió, no un diff numérico.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// Movement es un registro inmutable del historial de movimientos. A
// diferencia del feed de actividades, este log es la fuente de verdad de
// procedencia y su append forma parte de la misma escritura atómica que la
// mutación que describe.
type Movement struct {
	ID             string        `json:"id"`
	ItemID         string        `json:"itemId"`
	Timestamp      time.Time     `json:"timestamp"`
	UserName       string        `json:"userName"`
	Action         string        `json:"action"`
	Reason         string        `json:"reason"`
	ReasonText     string        `json:"reasonText,omitempty"`
	FromCategory   string        `json:"fromCategory,omitempty"`
	ToCategory     string        `json:"toCategory,omitempty"`
	ChangedFields  []FieldChange `json:"changedFields"`
	SelectedFields []string      `json:"selectedFields,omitempty"`
}

// ReasonNeedsText indica si el motivo exige una descripción del operador.
func ReasonNeedsText(reason string) bool {
	return reason == ReasonOther || reason == ReasonCorrection || reason == ReasonIrreparable
}
