package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/domain/duplicates"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
)

// Más de 3 campos vigilados dispara la advertencia de falsos positivos.
const watchedFieldsSoftCap = 3

const watchedWarning = "Monitorar muitos campos aumenta os falsos positivos: cada campo é um eixo independente de comparação"

// DuplicateUseCase informe de duplicados y configuración del detector.
type DuplicateUseCase struct {
	store repository.DocumentStore
	audit *audit.Recorder
}

// NewDuplicateUseCase construye el caso de uso.
func NewDuplicateUseCase(store repository.DocumentStore, rec *audit.Recorder) *DuplicateUseCase {
	return &DuplicateUseCase{store: store, audit: rec}
}

// Report ejecuta el barrido completo sobre el snapshot actual y deja
// constancia del resultado en el feed de actividades.
func (uc *DuplicateUseCase) Report(ctx context.Context) ([]dto.DuplicateGroupDTO, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	groups := duplicates.Detect(doc.Items, doc.DuplicateConfig.Fields)
	out := make([]dto.DuplicateGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.DuplicateGroupDTO{
			Field: g.Field,
			Value: g.Value,
			Count: len(g.Items),
			Items: g.Items,
		})
	}
	uc.audit.Record(ctx, entity.Activity{
		Type:        entity.ActivityWarning,
		Title:       "Detecção de duplicados",
		Description: fmt.Sprintf("%d grupos suspeitos encontrados", len(groups)),
	})
	return out, nil
}

// GetConfig devuelve el conjunto de campos vigilados.
func (uc *DuplicateUseCase) GetConfig(ctx context.Context) (*dto.DuplicateConfigResponse, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return configResponse(doc.DuplicateConfig.Fields), nil
}

// SetConfig reemplaza el conjunto de campos vigilados. El conjunto vacío es
// válido y apaga la detección.
func (uc *DuplicateUseCase) SetConfig(ctx context.Context, in dto.DuplicateConfigRequest) (*dto.DuplicateConfigResponse, error) {
	fields := []string{}
	seen := map[string]bool{}
	for _, f := range in.Fields {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		fields = append(fields, f)
	}
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		doc.DuplicateConfig.Fields = fields
		return nil
	})
	if err != nil {
		return nil, err
	}
	return configResponse(fields), nil
}

func configResponse(fields []string) *dto.DuplicateConfigResponse {
	resp := &dto.DuplicateConfigResponse{Fields: fields}
	if len(fields) > watchedFieldsSoftCap {
		resp.Warning = watchedWarning
	}
	return resp
}
