package entity

// Categorías sintéticas: destinos de movimiento creados bajo demanda,
// nunca a través del flujo normal de gestión de categorías.
const (
	StockCategoryID       = "STOCK_CATEGORY"
	MaintenanceCategoryID = "MAINTENANCE_CATEGORY"

	StockCategoryName       = "Estoque"
	MaintenanceCategoryName = "Manutenção"
)

// Category representa una categoría de activos de TI.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsReserved indica si el id pertenece a una categoría sintética del sistema.
func IsReserved(categoryID string) bool {
	return categoryID == StockCategoryID || categoryID == MaintenanceCategoryID
}
