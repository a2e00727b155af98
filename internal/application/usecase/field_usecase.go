package usecase

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/domain"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
)

// FieldUseCase casos de uso de campos dinámicos.
type FieldUseCase struct {
	store repository.DocumentStore
	audit *audit.Recorder
}

// NewFieldUseCase construye el caso de uso.
func NewFieldUseCase(store repository.DocumentStore, rec *audit.Recorder) *FieldUseCase {
	return &FieldUseCase{store: store, audit: rec}
}

// DeriveKey deriva la key de almacenamiento desde la etiqueta visible:
// sin acentos, en camelCase y solo alfanuméricos ("Número de Série" ->
// "numeroDeSerie").
func DeriveKey(name string) string {
	stripped := stripAccents(name)
	words := strings.FieldsFunc(stripped, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i > 0 {
			w = strings.ToUpper(w[:1]) + w[1:]
		}
		b.WriteString(w)
	}
	return b.String()
}

// stripAccents descompone a NFD y descarta las marcas diacríticas.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ListByCategory devuelve los campos de una categoría.
func (uc *FieldUseCase) ListByCategory(ctx context.Context, categoryID string) ([]entity.Field, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc.FindCategory(categoryID) == nil {
		return nil, domain.ErrNotFound
	}
	out := []entity.Field{}
	for _, f := range doc.Fields {
		if f.CategoryID == categoryID {
			out = append(out, f)
		}
	}
	return out, nil
}

// Create da de alta un campo en la categoría. La key se deriva del nombre si
// no viene explícita y debe ser única dentro de la categoría (no globalmente)
// y no colisionar con las propiedades reservadas del item.
func (uc *FieldUseCase) Create(ctx context.Context, categoryID string, in dto.CreateFieldRequest) (*entity.Field, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || !entity.ValidFieldType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	key := strings.TrimSpace(in.Key)
	if key == "" {
		key = DeriveKey(name)
	}
	if key == "" || entity.IsReservedItemKey(key) {
		return nil, domain.ErrInvalidInput
	}

	field := entity.Field{
		ID:         uuid.New().String(),
		CategoryID: categoryID,
		Name:       name,
		Key:        key,
		Type:       in.Type,
	}
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		if doc.FindCategory(categoryID) == nil {
			return domain.ErrNotFound
		}
		for _, f := range doc.Fields {
			if f.CategoryID == categoryID && f.Key == key {
				return domain.ErrDuplicateKey
			}
		}
		doc.Fields = append(doc.Fields, field)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &field, nil
}

// Update renombra un campo o cambia su tipo. La key no cambia: los valores ya
// guardados en los items siguen colgando de ella.
func (uc *FieldUseCase) Update(ctx context.Context, fieldID string, in dto.UpdateFieldRequest) (*entity.Field, error) {
	if in.Type != "" && !entity.ValidFieldType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	var updated entity.Field
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		for i := range doc.Fields {
			if doc.Fields[i].ID == fieldID {
				if name := strings.TrimSpace(in.Name); name != "" {
					doc.Fields[i].Name = name
				}
				if in.Type != "" {
					doc.Fields[i].Type = in.Type
				}
				updated = doc.Fields[i]
				return nil
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete elimina la definición del campo y limpia su valor en los items de la
// categoría.
func (uc *FieldUseCase) Delete(ctx context.Context, fieldID string) error {
	return uc.store.Run(ctx, func(doc *entity.Document) error {
		var removed *entity.Field
		kept := doc.Fields[:0]
		for _, f := range doc.Fields {
			if f.ID == fieldID {
				fv := f
				removed = &fv
				continue
			}
			kept = append(kept, f)
		}
		if removed == nil {
			return domain.ErrNotFound
		}
		doc.Fields = kept
		for i := range doc.Items {
			if doc.Items[i].CategoryID == removed.CategoryID {
				delete(doc.Items[i].Values, removed.Key)
			}
		}
		return nil
	})
}
