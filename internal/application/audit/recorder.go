package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/patrimonio-api/pkg/logger"
)

// Recorder escribe el feed de actividades. El append es best-effort: se hace
// en una escritura separada de la mutación primaria que describe y, si el
// almacén falla, el error se registra y se descarta. El feed nunca bloquea
// ni revierte una operación. El historial de movimientos NO pasa por aquí:
// ese log es fuente de verdad y se escribe dentro de la misma unidad de
// trabajo que su mutación.
type Recorder struct {
	store repository.DocumentStore
	log   *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(store repository.DocumentStore, log *logger.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// Record completa id y timestamp y agrega la actividad al anillo (tope 200,
// la más nueva primero). Cualquier error se traga.
func (r *Recorder) Record(ctx context.Context, act entity.Activity) {
	act.ID = uuid.New().String()
	act.Time = time.Now()
	err := r.store.Run(ctx, func(doc *entity.Document) error {
		doc.PushActivity(act)
		return nil
	})
	if err != nil {
		r.log.Warn().Err(err).Str("title", act.Title).Msg("actividad descartada")
	}
}

// Recent devuelve las actividades del feed (la más nueva primero).
func (r *Recorder) Recent(ctx context.Context, limit int) ([]entity.Activity, error) {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	acts := doc.Activities
	if limit > 0 && limit < len(acts) {
		acts = acts[:limit]
	}
	return acts, nil
}
