// Package items implementa el CRUD de items y el protocolo de confirmación
// de duplicados en dos fases: toda escritura que crea o edita un item se
// propone primero; si algún campo vigilado colisiona con items existentes la
// escritura queda suspendida hasta que el operador la confirme (commit tal
// cual, registrando que se hizo a pesar de los duplicados) o la cancele
// (descarte total). Ningún item se persiste con colisiones sin resolver.
package items

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/application/movement"
	"github.com/jhoicas/patrimonio-api/internal/domain"
	"github.com/jhoicas/patrimonio-api/internal/domain/duplicates"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
)

// Disposiciones de los valores antiguos en una edición con campos alterados.
const (
	DispositionStock       = "stock"
	DispositionMaintenance = "maintenance"
	DispositionDiscard     = "discard"
)

// Outcome resultado de proponer una escritura. Exactamente uno de los
// campos es no-nil: Committed (camino rápido, sin colisiones), Pending
// (escritura suspendida a la espera de confirmar/cancelar) o Disposition
// (edición a la espera de la disposición de los valores antiguos).
type Outcome struct {
	Committed   *entity.Item
	Pending     *dto.PendingWriteResponse
	Disposition *dto.DispositionRequiredResponse
}

// pendingWrite escritura suspendida por colisiones. Vive solo en memoria:
// no hay timeout ni expiración automática, la resuelve el operador.
type pendingWrite struct {
	id          string
	candidate   *entity.Item
	isEdit      bool
	disposition string
	changed     []string
	collisions  []duplicates.Collision
	userName    string
	createdAt   time.Time
}

// UseCase casos de uso de items.
type UseCase struct {
	store repository.DocumentStore
	audit *audit.Recorder

	mu      sync.Mutex
	pending map[string]*pendingWrite
}

// NewUseCase construye el caso de uso.
func NewUseCase(store repository.DocumentStore, rec *audit.Recorder) *UseCase {
	return &UseCase{store: store, audit: rec, pending: map[string]*pendingWrite{}}
}

// ListByCategory devuelve los items de una categoría.
func (uc *UseCase) ListByCategory(ctx context.Context, categoryID string) ([]entity.Item, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc.FindCategory(categoryID) == nil {
		return nil, domain.ErrNotFound
	}
	out := []entity.Item{}
	for _, it := range doc.Items {
		if it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, nil
}

// Get devuelve un item por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	it := doc.FindItem(id)
	if it == nil {
		return nil, domain.ErrNotFound
	}
	return it, nil
}

// validateValues verifica que cada key exista como campo de la categoría y
// que el valor respete el tipo declarado (la lista de Fields de la categoría
// es la fuente de verdad del esquema).
func validateValues(doc *entity.Document, categoryID string, values map[string]any) error {
	schema := map[string]string{}
	for _, f := range doc.Fields {
		if f.CategoryID == categoryID {
			schema[f.Key] = f.Type
		}
	}
	for key, v := range values {
		if entity.IsReservedItemKey(key) {
			return domain.ErrInvalidInput
		}
		ftype, ok := schema[key]
		if !ok {
			return fmt.Errorf("%w: campo desconocido %q en la categoría", domain.ErrInvalidInput, key)
		}
		if v == nil {
			continue
		}
		switch ftype {
		case entity.FieldTypeNumber:
			switch v.(type) {
			case float64, int:
			default:
				return fmt.Errorf("%w: %q debe ser numérico", domain.ErrInvalidInput, key)
			}
		case entity.FieldTypeBoolean:
			if _, ok := v.(bool); !ok {
				return fmt.Errorf("%w: %q debe ser booleano", domain.ErrInvalidInput, key)
			}
		}
	}
	return nil
}

// Create propone el alta de un item. Sin colisiones en campos vigilados se
// persiste de inmediato (camino común); con colisiones la escritura queda
// suspendida y se devuelven las coincidencias para el operador.
func (uc *UseCase) Create(ctx context.Context, in dto.ItemRequest, userName string) (*Outcome, error) {
	if in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != "" && !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc.FindCategory(in.CategoryID) == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateValues(doc, in.CategoryID, in.Values); err != nil {
		return nil, err
	}

	candidate := &entity.Item{
		ID:         uuid.New().String(),
		CategoryID: in.CategoryID,
		Status:     in.Status,
		Values:     cloneValues(in.Values),
	}

	collisions := duplicates.MatchCandidate(doc.Items, doc.DuplicateConfig.Fields, candidate, "")
	if len(collisions) > 0 {
		return uc.suspend(candidate, false, "", nil, collisions, userName), nil
	}
	if err := uc.commitCreate(ctx, candidate, false); err != nil {
		return nil, err
	}
	return &Outcome{Committed: candidate}, nil
}

// Update propone la edición de un item. Primero el flujo de campos
// alterados: si algún campo con valor anterior no vacío cambia y no se
// indicó disposición, la edición no avanza hasta que el operador elija qué
// hacer con los valores antiguos. Después el chequeo de duplicados, igual
// que en el alta pero excluyendo el propio item.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.ItemRequest, disposition, userName string) (*Outcome, error) {
	if disposition != "" && disposition != DispositionStock &&
		disposition != DispositionMaintenance && disposition != DispositionDiscard {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != "" && !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	stored := doc.FindItem(id)
	if stored == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateValues(doc, stored.CategoryID, in.Values); err != nil {
		return nil, err
	}

	candidate := &entity.Item{
		ID:         id,
		CategoryID: stored.CategoryID,
		Status:     in.Status,
		Values:     cloneValues(in.Values),
	}
	if candidate.Status == "" {
		candidate.Status = stored.Status
	}

	changed := duplicates.ChangedFields(stored, candidate)
	if len(changed) > 0 && disposition == "" {
		resp := &dto.DispositionRequiredResponse{
			Options: []string{DispositionStock, DispositionMaintenance, DispositionDiscard},
		}
		for _, f := range changed {
			resp.ChangedFields = append(resp.ChangedFields, dto.ChangedFieldDTO{
				Field:    f,
				OldValue: stored.Value(f),
				NewValue: candidate.Value(f),
			})
		}
		return &Outcome{Disposition: resp}, nil
	}

	collisions := duplicates.MatchCandidate(doc.Items, doc.DuplicateConfig.Fields, candidate, id)
	if len(collisions) > 0 {
		return uc.suspend(candidate, true, disposition, changed, collisions, userName), nil
	}
	if err := uc.commitEdit(ctx, candidate, disposition, changed, userName, false); err != nil {
		return nil, err
	}
	return &Outcome{Committed: candidate}, nil
}

// suspend registra la escritura pendiente y arma la respuesta de colisiones.
func (uc *UseCase) suspend(candidate *entity.Item, isEdit bool, disposition string, changed []string, collisions []duplicates.Collision, userName string) *Outcome {
	pw := &pendingWrite{
		id:          uuid.New().String(),
		candidate:   candidate,
		isEdit:      isEdit,
		disposition: disposition,
		changed:     changed,
		collisions:  collisions,
		userName:    userName,
		createdAt:   time.Now(),
	}
	uc.mu.Lock()
	uc.pending[pw.id] = pw
	uc.mu.Unlock()

	resp := &dto.PendingWriteResponse{PendingID: pw.id}
	for _, c := range collisions {
		resp.Duplicates = append(resp.Duplicates, dto.CollisionDTO{
			Field:   c.Field,
			Value:   c.Value,
			Matches: c.Matches,
		})
	}
	return &Outcome{Pending: resp}
}

// Confirm retoma una escritura suspendida y la persiste exactamente como se
// propuso, dejando constancia en el feed de que se hizo a pesar de los
// duplicados.
func (uc *UseCase) Confirm(ctx context.Context, pendingID string) (*entity.Item, error) {
	pw, err := uc.take(pendingID)
	if err != nil {
		return nil, err
	}
	if pw.isEdit {
		if err := uc.commitEdit(ctx, pw.candidate, pw.disposition, pw.changed, pw.userName, true); err != nil {
			return nil, err
		}
	} else {
		if err := uc.commitCreate(ctx, pw.candidate, true); err != nil {
			return nil, err
		}
	}
	return pw.candidate, nil
}

// Cancel descarta una escritura suspendida. En una edición el item original
// queda intacto; en un alta el borrador simplemente muere. El cliente
// conserva su formulario: cancelar nunca destruye lo tipeado.
func (uc *UseCase) Cancel(ctx context.Context, pendingID string) error {
	_, err := uc.take(pendingID)
	return err
}

func (uc *UseCase) take(pendingID string) (*pendingWrite, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	pw, ok := uc.pending[pendingID]
	if !ok {
		return nil, domain.ErrPendingNotFound
	}
	delete(uc.pending, pendingID)
	return pw, nil
}

func (uc *UseCase) commitCreate(ctx context.Context, candidate *entity.Item, despiteDuplicates bool) error {
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		if doc.FindCategory(candidate.CategoryID) == nil {
			return domain.ErrNotFound
		}
		doc.Items = append(doc.Items, *candidate)
		return nil
	})
	if err != nil {
		return err
	}
	uc.audit.Record(ctx, uc.itemActivity(ctx, entity.ActivityCreate, "Item adicionado", candidate, despiteDuplicates))
	return nil
}

// commitEdit sobrescribe el item con el candidato. Con disposición stock o
// maintenance, los valores ANTIGUOS de los campos alterados se desprenden
// antes hacia un item nuevo vía la mecánica field_split (la fuente de los
// valores es el snapshot previo a la edición; el origen no se limpia porque
// la propia edición lo sobrescribe). Todo en una sola unidad de trabajo.
func (uc *UseCase) commitEdit(ctx context.Context, candidate *entity.Item, disposition string, changed []string, userName string, despiteDuplicates bool) error {
	var movedTo string
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		stored := doc.FindItem(candidate.ID)
		if stored == nil {
			return domain.ErrNotFound
		}
		if (disposition == DispositionStock || disposition == DispositionMaintenance) && len(changed) > 0 {
			target := entity.StatusStock
			if disposition == DispositionMaintenance {
				target = entity.StatusMaintenance
			}
			reason := entity.ReasonToStock
			if target == entity.StatusMaintenance {
				reason = entity.ReasonToMaintenance
			}
			reasonText := "Valores antigos movidos durante edição: " + strings.Join(changed, ", ")
			movement.ApplySplit(doc, candidate.ID, changed, target, reason, reasonText, userName, time.Now(), false)
			movedTo = target
		}
		stored = doc.FindItem(candidate.ID)
		stored.Status = candidate.Status
		stored.Values = cloneValues(candidate.Values)
		return nil
	})
	if err != nil {
		return err
	}
	act := uc.itemActivity(ctx, entity.ActivityUpdate, "Item atualizado", candidate, despiteDuplicates)
	if movedTo != "" {
		act.Description += fmt.Sprintf(" (valores antigos movidos para %s)", movedTo)
	}
	uc.audit.Record(ctx, act)
	return nil
}

// Delete elimina un item de forma explícita.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	var removed *entity.Item
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		it := doc.FindItem(id)
		if it == nil {
			return domain.ErrNotFound
		}
		removed = it.Clone()
		doc.RemoveItem(id)
		return nil
	})
	if err != nil {
		return err
	}
	uc.audit.Record(ctx, uc.itemActivity(ctx, entity.ActivityDelete, "Item excluído", removed, false))
	return nil
}

// itemActivity arma la actividad del feed para una mutación de item.
func (uc *UseCase) itemActivity(ctx context.Context, actType, title string, item *entity.Item, despiteDuplicates bool) entity.Activity {
	act := entity.Activity{
		Type:       actType,
		Title:      title,
		ItemID:     item.ID,
		ItemName:   displayName(item),
		CategoryID: item.CategoryID,
	}
	if doc, err := uc.store.Load(ctx); err == nil {
		if c := doc.FindCategory(item.CategoryID); c != nil {
			act.CategoryName = c.Name
			act.Description = fmt.Sprintf("Categoria %s", c.Name)
		}
	}
	if despiteDuplicates {
		act.Type = entity.ActivityWarning
		act.Description = strings.TrimSpace(act.Description + " — confirmado apesar de duplicados detectados")
	}
	return act
}

// displayName toma el primer valor textual poblado (claves en orden
// alfabético) como nombre presentable del item.
func displayName(item *entity.Item) string {
	for _, k := range item.PopulatedKeys() {
		if s, ok := item.Value(k).(string); ok && s != "" {
			return s
		}
	}
	return "Item"
}

func cloneValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}
