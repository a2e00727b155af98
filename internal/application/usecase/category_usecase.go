// Package usecase contiene los casos de uso de administración del catálogo:
// categorías, campos dinámicos y configuración del detector de duplicados.
package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/domain"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías.
type CategoryUseCase struct {
	store repository.DocumentStore
	audit *audit.Recorder
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(store repository.DocumentStore, rec *audit.Recorder) *CategoryUseCase {
	return &CategoryUseCase{store: store, audit: rec}
}

// List devuelve todas las categorías con su conteo de items.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, it := range doc.Items {
		counts[it.CategoryID]++
	}
	out := make([]dto.CategoryResponse, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		out = append(out, dto.CategoryResponse{
			ID:       c.ID,
			Name:     c.Name,
			Reserved: entity.IsReserved(c.ID),
			Items:    counts[c.ID],
		})
	}
	return out, nil
}

// Create da de alta una categoría con id fresco.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest, userName string) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat := entity.Category{ID: uuid.New().String(), Name: name}
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		doc.Categories = append(doc.Categories, cat)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.Activity{
		Type:         entity.ActivityCreate,
		Title:        "Categoria criada",
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
	})
	return &cat, nil
}

// Delete elimina una categoría con cascada sobre sus campos e items. Las
// categorías sintéticas de destino no se tocan por esta vía.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if entity.IsReserved(id) {
		return domain.ErrReservedCategory
	}
	var name string
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		cat := doc.FindCategory(id)
		if cat == nil {
			return domain.ErrNotFound
		}
		name = cat.Name
		kept := doc.Categories[:0]
		for _, c := range doc.Categories {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		doc.Categories = kept

		fields := doc.Fields[:0]
		for _, f := range doc.Fields {
			if f.CategoryID != id {
				fields = append(fields, f)
			}
		}
		doc.Fields = fields

		items := doc.Items[:0]
		for _, it := range doc.Items {
			if it.CategoryID != id {
				items = append(items, it)
			}
		}
		doc.Items = items
		return nil
	})
	if err != nil {
		return err
	}
	uc.audit.Record(ctx, entity.Activity{
		Type:         entity.ActivityDelete,
		Title:        "Categoria removida",
		Description:  "Campos e itens da categoria removidos em cascata",
		CategoryID:   id,
		CategoryName: name,
	})
	return nil
}
