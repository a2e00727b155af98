package entity

// Tipos de campo soportados.
const (
	FieldTypeString  = "string"
	FieldTypeNumber  = "number"
	FieldTypeBoolean = "boolean"
)

// Field define un campo dinámico de una categoría. Key es el nombre de
// propiedad normalizado bajo el cual se guarda el valor en el item; Name es
// la etiqueta visible. Key es única dentro de la categoría, no globalmente.
type Field struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	Key        string `json:"key"`
	Type       string `json:"type"`
}

// ValidFieldType indica si t es un tipo de campo soportado.
func ValidFieldType(t string) bool {
	return t == FieldTypeString || t == FieldTypeNumber || t == FieldTypeBoolean
}
