package dto

import "github.com/jhoicas/patrimonio-api/internal/domain/entity"

// DuplicateConfigRequest actualización del conjunto de campos vigilados.
type DuplicateConfigRequest struct {
	Fields []string `json:"fields"`
}

// DuplicateConfigResponse configuración vigente. Warning se llena cuando el
// conjunto supera los 3 campos: con la semántica por-campo (OR) cada campo
// adicional amplía los falsos positivos.
type DuplicateConfigResponse struct {
	Fields  []string `json:"fields"`
	Warning string   `json:"warning,omitempty"`
}

// DuplicateGroupDTO grupo del barrido completo, ordenado por tamaño.
type DuplicateGroupDTO struct {
	Field string        `json:"field"`
	Value string        `json:"value"`
	Count int           `json:"count"`
	Items []entity.Item `json:"items"`
}

// CollisionDTO colisión de un campo vigilado del candidato contra items
// existentes (chequeo pre-escritura).
type CollisionDTO struct {
	Field   string        `json:"field"`
	Value   string        `json:"value"`
	Matches []entity.Item `json:"matches"`
}

// PendingWriteResponse escritura suspendida a la espera de la decisión del
// operador: confirmar (commit tal cual) o cancelar (descartar).
type PendingWriteResponse struct {
	PendingID  string         `json:"pendingId"`
	Duplicates []CollisionDTO `json:"duplicates"`
}

// ChangedFieldDTO campo cuyo valor anterior no vacío difiere del nuevo.
type ChangedFieldDTO struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// DispositionRequiredResponse la edición queda en espera de la disposición
// de los valores antiguos: moverlos a estoque, a manutenção o descartarlos.
type DispositionRequiredResponse struct {
	ChangedFields []ChangedFieldDTO `json:"changedFields"`
	Options       []string          `json:"options"`
}
