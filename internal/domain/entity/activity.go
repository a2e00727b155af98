package entity

import "time"

// Tipos de actividad del feed.
const (
	ActivityInfo    = "info"
	ActivityImport  = "import"
	ActivityCreate  = "create"
	ActivityUpdate  = "update"
	ActivityDelete  = "delete"
	ActivityWarning = "warning"
)

// Activity es una entrada legible del feed de actividades. Puramente
// informativa: su único invariante es que el orden de inserción coincide con
// el orden cronológico inverso de presentación.
type Activity struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Time         time.Time `json:"time"`
	ItemID       string    `json:"itemId,omitempty"`
	ItemName     string    `json:"itemName,omitempty"`
	CategoryID   string    `json:"categoryId,omitempty"`
	CategoryName string    `json:"categoryName,omitempty"`
}
