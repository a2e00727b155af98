// Package movement implementa el motor de movimientos: la transferencia
// field_split de un subconjunto de campos de un item hacia la categoría
// sintética de su estado destino, con su registro de auditoría en la misma
// escritura atómica.
package movement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/domain"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
)

// Engine ejecuta transferencias field_split y consultas de procedencia.
type Engine struct {
	store repository.DocumentStore
	audit *audit.Recorder
}

// NewEngine construye el motor.
func NewEngine(store repository.DocumentStore, rec *audit.Recorder) *Engine {
	return &Engine{store: store, audit: rec}
}

// SplitInput entrada de una transferencia field_split.
type SplitInput struct {
	ItemID         string
	SelectedFields []string
	TargetStatus   string // stock | maintenance
	Reason         string
	ReasonText     string
	UserName       string
}

// SplitResult resultado de la transferencia. NoOp indica que el item origen
// ya no existía al momento del commit y la operación se ignoró sin escribir
// nada. SourceDeleted indica que el origen quedó sin campos poblados y fue
// eliminado, un desenlace informativo distinto del éxito normal.
type SplitResult struct {
	NoOp          bool
	NewItem       *entity.Item
	SourceDeleted bool
	Movement      *entity.Movement
}

// destinationFor resuelve la categoría sintética del estado destino.
func destinationFor(targetStatus string) (id, name string, ok bool) {
	switch targetStatus {
	case entity.StatusStock:
		return entity.StockCategoryID, entity.StockCategoryName, true
	case entity.StatusMaintenance:
		return entity.MaintenanceCategoryID, entity.MaintenanceCategoryName, true
	}
	return "", "", false
}

// Split valida la entrada y ejecuta la transferencia como una sola unidad de
// trabajo: creación de la categoría destino si falta, alta del item nuevo,
// limpieza (o eliminación) del origen y append del movimiento.
func (e *Engine) Split(ctx context.Context, in SplitInput) (*SplitResult, error) {
	if in.ItemID == "" || len(in.SelectedFields) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, _, ok := destinationFor(in.TargetStatus); !ok {
		return nil, domain.ErrInvalidInput
	}
	reason := in.Reason
	if reason == "" {
		if in.TargetStatus == entity.StatusStock {
			reason = entity.ReasonToStock
		} else {
			reason = entity.ReasonToMaintenance
		}
	}
	if entity.ReasonNeedsText(reason) && strings.TrimSpace(in.ReasonText) == "" {
		return nil, domain.ErrInvalidInput
	}

	result := &SplitResult{}
	err := e.store.Run(ctx, func(doc *entity.Document) error {
		src := doc.FindItem(in.ItemID)
		if src == nil {
			// El origen desapareció antes del commit: no-op silencioso,
			// sin registro parcial.
			result.NoOp = true
			return nil
		}
		newItem, mov, deleted := ApplySplit(doc, src.ID, in.SelectedFields, in.TargetStatus, reason, in.ReasonText, in.UserName, time.Now(), true)
		result.NewItem = newItem
		result.Movement = mov
		result.SourceDeleted = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.NoOp {
		return result, nil
	}

	desc := fmt.Sprintf("%d campo(s) movido(s): %s", len(in.SelectedFields), strings.Join(in.SelectedFields, ", "))
	if result.SourceDeleted {
		desc += " (item original removido: todos os campos foram movidos)"
	}
	e.audit.Record(ctx, entity.Activity{
		Type:        entity.ActivityUpdate,
		Title:       "Item movimentado",
		Description: desc,
		ItemID:      result.NewItem.ID,
		CategoryID:  result.Movement.ToCategory,
	})
	return result, nil
}

// ApplySplit aplica la mecánica field_split sobre el documento ya cargado:
//
//  1. lookup-or-create de la categoría sintética destino
//  2. item nuevo con id fresco, categoría destino, status destino y SOLO los
//     valores de selected copiados del origen
//  3. si clearSource, los mismos campos quedan en nil en el origen (es un
//     movimiento, no una copia) y, si no queda ningún campo poblado, el
//     origen se elimina por completo
//  4. exactamente un registro field_split con changedFields enumerando el
//     valor movido de cada campo (oldValue == newValue: el registro documenta
//     qué se movió, el valor en sí no cambió)
//
// El flujo de edición con disposición pasa clearSource=false: allí los
// valores antiguos salen del snapshot previo y el origen será sobrescrito
// por la propia edición.
//
// El llamador es responsable de ejecutar esto dentro de una unidad de
// trabajo del almacén.
func ApplySplit(doc *entity.Document, sourceID string, selected []string, targetStatus, reason, reasonText, userName string, now time.Time, clearSource bool) (*entity.Item, *entity.Movement, bool) {
	src := doc.FindItem(sourceID)
	if src == nil {
		return nil, nil, false
	}
	fromCategory := src.CategoryID
	original := src.Clone()

	destID, destName, _ := destinationFor(targetStatus)
	doc.EnsureCategory(destID, destName)

	newItem := entity.Item{
		ID:         uuid.New().String(),
		CategoryID: destID,
		Status:     targetStatus,
		Values:     map[string]any{},
	}
	for _, f := range selected {
		newItem.Values[f] = original.Value(f)
	}
	doc.Items = append(doc.Items, newItem)

	sourceDeleted := false
	if clearSource {
		// Releer: el append pudo reubicar el slice de items
		src = doc.FindItem(sourceID)
		for _, f := range selected {
			src.SetValue(f, nil)
		}
		if len(src.PopulatedKeys()) == 0 {
			doc.RemoveItem(sourceID)
			sourceDeleted = true
		}
	}

	if reasonText == "" {
		reasonText = "Campos movidos: " + strings.Join(selected, ", ")
	}
	changed := make([]entity.FieldChange, 0, len(selected))
	for _, f := range selected {
		v := original.Value(f)
		changed = append(changed, entity.FieldChange{Field: f, OldValue: v, NewValue: v})
	}
	mov := entity.Movement{
		ID:             uuid.New().String(),
		ItemID:         newItem.ID,
		Timestamp:      now,
		UserName:       userName,
		Action:         entity.ActionFieldSplit,
		Reason:         reason,
		ReasonText:     reasonText,
		FromCategory:   fromCategory,
		ToCategory:     destID,
		ChangedFields:  changed,
		SelectedFields: append([]string{}, selected...),
	}
	doc.PushMovement(mov)

	stored := doc.FindItem(newItem.ID)
	return stored, &doc.MovementHistory[0], sourceDeleted
}

// ItemHistory devuelve los movimientos de un item, el más reciente primero.
func (e *Engine) ItemHistory(ctx context.Context, itemID string) ([]entity.Movement, error) {
	doc, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.ItemHistory(itemID), nil
}

// Recent devuelve los últimos movimientos del historial global.
func (e *Engine) Recent(ctx context.Context, limit int) ([]entity.Movement, error) {
	doc, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	movs := doc.MovementHistory
	if limit > 0 && limit < len(movs) {
		movs = movs[:limit]
	}
	return movs, nil
}
