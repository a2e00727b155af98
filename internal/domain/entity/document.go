package entity

// Límites de los logs append-only (anillo FIFO: al superar el tope se
// descartan las entradas más antiguas).
const (
	MaxActivities = 200
	MaxMovements  = 1000
)

// DuplicateConfig es el conjunto global de claves de campo vigiladas por el
// detector de duplicados. Con el conjunto vacío el detector no reporta
// grupos: caso degenerado deliberado, no un error.
type DuplicateConfig struct {
	Fields []string `json:"fields"`
}

// Document es el documento único persistido con todo el estado del sistema.
// Cada operación lee un snapshot completo, lo muta en memoria y lo escribe
// de vuelta entero; ningún componente retiene referencias mutables entre
// escrituras.
type Document struct {
	Categories      []Category      `json:"categories"`
	Fields          []Field         `json:"fields"`
	Items           []Item          `json:"items"`
	Activities      []Activity      `json:"activities"`
	MovementHistory []Movement      `json:"movementHistory"`
	ReturnRecords   []ReturnRecord  `json:"returnRecords"`
	Returns         []ReturnNote    `json:"returns"`
	DuplicateConfig DuplicateConfig `json:"duplicateConfig"`
	Users           []User          `json:"users"`
}

// NewDocument devuelve el documento semilla de un almacén recién creado.
func NewDocument() *Document {
	return &Document{
		Categories:      []Category{},
		Fields:          []Field{},
		Items:           []Item{},
		Activities:      []Activity{},
		MovementHistory: []Movement{},
		ReturnRecords:   []ReturnRecord{},
		Returns:         []ReturnNote{},
		DuplicateConfig: DuplicateConfig{Fields: []string{}},
		Users:           []User{},
	}
}

// FindCategory devuelve la categoría con ese id, o nil.
func (d *Document) FindCategory(id string) *Category {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return &d.Categories[i]
		}
	}
	return nil
}

// FindItem devuelve el item con ese id, o nil.
func (d *Document) FindItem(id string) *Item {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return &d.Items[i]
		}
	}
	return nil
}

// RemoveItem elimina el item con ese id. Devuelve true si existía.
func (d *Document) RemoveItem(id string) bool {
	for i := range d.Items {
		if d.Items[i].ID == id {
			d.Items = append(d.Items[:i], d.Items[i+1:]...)
			return true
		}
	}
	return false
}

// FindUser devuelve el usuario con ese username, o nil.
func (d *Document) FindUser(username string) *User {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return &d.Users[i]
		}
	}
	return nil
}

// FindReturnNote devuelve la nota de devolución con ese id, o nil.
func (d *Document) FindReturnNote(id string) *ReturnNote {
	for i := range d.Returns {
		if d.Returns[i].ID == id {
			return &d.Returns[i]
		}
	}
	return nil
}

// EnsureCategory busca la categoría o la crea si no existe (lookup-or-create
// idempotente, usado para las categorías sintéticas de destino).
func (d *Document) EnsureCategory(id, name string) *Category {
	if c := d.FindCategory(id); c != nil {
		return c
	}
	d.Categories = append(d.Categories, Category{ID: id, Name: name})
	return &d.Categories[len(d.Categories)-1]
}

// PushActivity inserta la actividad al frente del feed y recorta el anillo
// a MaxActivities entradas.
func (d *Document) PushActivity(a Activity) {
	d.Activities = append([]Activity{a}, d.Activities...)
	if len(d.Activities) > MaxActivities {
		d.Activities = d.Activities[:MaxActivities]
	}
}

// PushMovement inserta el movimiento al frente del historial y recorta el
// anillo a MaxMovements entradas.
func (d *Document) PushMovement(m Movement) {
	d.MovementHistory = append([]Movement{m}, d.MovementHistory...)
	if len(d.MovementHistory) > MaxMovements {
		d.MovementHistory = d.MovementHistory[:MaxMovements]
	}
}

// ItemHistory devuelve los movimientos del item, del más reciente al más
// antiguo (orden de inserción del anillo).
func (d *Document) ItemHistory(itemID string) []Movement {
	out := []Movement{}
	for _, m := range d.MovementHistory {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out
}
