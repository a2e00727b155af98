package entity

import (
	"encoding/json"
	"sort"
)

// Estados posibles de un item.
const (
	StatusActive      = "active"
	StatusStock       = "stock"
	StatusMaintenance = "maintenance"
	StatusCondemned   = "condemned"
	StatusReturned    = "returned"
)

// Claves reservadas del objeto item: todo lo demás es un valor de campo.
const (
	itemKeyID       = "id"
	itemKeyCategory = "categoryId"
	itemKeyStatus   = "status"
)

// Item representa un activo. Los valores de campos dinámicos viven en Values,
// un mapa tipado key -> valor cuya fuente de verdad de esquema es la lista de
// Fields de la categoría. En JSON el mapa se aplana al nivel superior del
// objeto ({id, categoryId, status?, <key>: <valor>...}) para conservar el
// layout del documento persistido.
type Item struct {
	ID         string
	CategoryID string
	Status     string
	Values     map[string]any
}

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusStock, StatusMaintenance, StatusCondemned, StatusReturned:
		return true
	}
	return false
}

// IsReservedItemKey indica si key es una propiedad reservada del item
// (id, categoryId, status) y no un campo dinámico.
func IsReservedItemKey(key string) bool {
	return key == itemKeyID || key == itemKeyCategory || key == itemKeyStatus
}

// EffectiveStatus devuelve el status del item, con "active" como valor por
// defecto cuando está ausente.
func (i *Item) EffectiveStatus() string {
	if i.Status == "" {
		return StatusActive
	}
	return i.Status
}

// Value devuelve el valor del campo key (nil si no está poblado).
func (i *Item) Value(key string) any {
	if i.Values == nil {
		return nil
	}
	return i.Values[key]
}

// SetValue asigna el valor de un campo dinámico.
func (i *Item) SetValue(key string, v any) {
	if i.Values == nil {
		i.Values = map[string]any{}
	}
	i.Values[key] = v
}

// PopulatedKeys devuelve las claves de campos con valor poblado, en orden
// alfabético para que todo recorrido sea determinista. Vacíos son nil, "",
// false y 0, la misma regla de veracidad que aplica el cálculo de campos
// restantes tras un field_split.
func (i *Item) PopulatedKeys() []string {
	keys := make([]string, 0, len(i.Values))
	for k, v := range i.Values {
		if !EmptyValue(v) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// EmptyValue indica si v cuenta como valor vacío de campo.
func EmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	}
	return false
}

// Clone devuelve una copia profunda del item (los valores son escalares JSON).
func (i *Item) Clone() *Item {
	cp := &Item{ID: i.ID, CategoryID: i.CategoryID, Status: i.Status}
	if i.Values != nil {
		cp.Values = make(map[string]any, len(i.Values))
		for k, v := range i.Values {
			cp.Values[k] = v
		}
	}
	return cp
}

// MarshalJSON aplana Values al nivel superior del objeto.
func (i Item) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(i.Values)+3)
	for k, v := range i.Values {
		if !IsReservedItemKey(k) {
			flat[k] = v
		}
	}
	flat[itemKeyID] = i.ID
	flat[itemKeyCategory] = i.CategoryID
	if i.Status != "" {
		flat[itemKeyStatus] = i.Status
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reconstruye el item desde el objeto aplanado.
func (i *Item) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	i.ID, _ = flat[itemKeyID].(string)
	i.CategoryID, _ = flat[itemKeyCategory].(string)
	i.Status, _ = flat[itemKeyStatus].(string)
	i.Values = make(map[string]any)
	for k, v := range flat {
		if !IsReservedItemKey(k) {
			i.Values[k] = v
		}
	}
	return nil
}
