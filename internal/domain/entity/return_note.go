package entity

import "time"

// Estados de una nota de devolución.
const (
	NoteStatusPendente   = "pendente"
	NoteStatusProcessada = "processada"
	NoteStatusCancelada  = "cancelada"
)

// ReturnNoteItem es una línea de la nota (patrimônio + modelo + marca).
type ReturnNoteItem struct {
	ID         string `json:"id"`
	Patrimonio string `json:"patrimonio"`
	Modelo     string `json:"modelo"`
	Marca      string `json:"marca"`
}

// ReturnNote es una nota de devolución al proveedor: agregado independiente
// del motor de movimientos, con su propia máquina de estados.
type ReturnNote struct {
	ID          string           `json:"id"`
	NumeroNota  string           `json:"numeroNota"`
	Data        string           `json:"data"` // fecha de emisión AAAA-MM-DD
	Itens       []ReturnNoteItem `json:"itens"`
	Observacoes string           `json:"observacoes,omitempty"`
	Status      string           `json:"status"`
	CriadoPor   string           `json:"criadoPor"`
	CriadoEm    time.Time        `json:"criadoEm"`
}

// ValidNoteStatus indica si s es un estado conocido de nota.
func ValidNoteStatus(s string) bool {
	return s == NoteStatusPendente || s == NoteStatusProcessada || s == NoteStatusCancelada
}

// CanTransition implementa la máquina de estados de la nota:
// pendente -> processada | cancelada, y reabrir siempre es legal
// ({processada, cancelada} -> pendente). No existe transición directa entre
// processada y cancelada.
func (n *ReturnNote) CanTransition(to string) bool {
	switch n.Status {
	case NoteStatusPendente:
		return to == NoteStatusProcessada || to == NoteStatusCancelada
	case NoteStatusProcessada, NoteStatusCancelada:
		return to == NoteStatusPendente
	}
	return false
}
