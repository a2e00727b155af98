// Package returns implementa las devoluciones al proveedor: el registro
// individual por item (con su cambio de estado y su movimiento) y las notas
// de devolución como agregado independiente con máquina de estados propia.
package returns

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/domain"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
)

// UseCase casos de uso de devoluciones.
type UseCase struct {
	store repository.DocumentStore
	audit *audit.Recorder
	pdf   NotePDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(store repository.DocumentStore, rec *audit.Recorder, pdf NotePDFGenerator) *UseCase {
	return &UseCase{store: store, audit: rec, pdf: pdf}
}

// CreateRecord registra la devolución de un item: valida los datos fiscales,
// marca el item como devuelto, agrega el registro y el movimiento en la misma
// escritura.
func (uc *UseCase) CreateRecord(ctx context.Context, itemID string, in dto.ReturnItemRequest, userName string) (*entity.ReturnRecord, error) {
	if strings.TrimSpace(in.ReturnedTo) == "" ||
		strings.TrimSpace(in.InvoiceNumber) == "" ||
		strings.TrimSpace(in.InvoiceDate) == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := time.Parse("2006-01-02", in.InvoiceDate); err != nil {
		return nil, domain.ErrInvalidInput
	}
	reason := in.ReturnReason
	if reason == "" {
		reason = entity.ReasonWarranty
	}
	if entity.ReasonNeedsText(reason) && strings.TrimSpace(in.ReturnReasonText) == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	record := entity.ReturnRecord{
		ID:               uuid.New().String(),
		ItemID:           itemID,
		ReturnReason:     reason,
		ReturnReasonText: in.ReturnReasonText,
		ReturnedTo:       in.ReturnedTo,
		InvoiceNumber:    in.InvoiceNumber,
		InvoiceDate:      in.InvoiceDate,
		EstimatedValue:   in.EstimatedValue,
		Notes:            in.Notes,
		Timestamp:        now,
		UserName:         userName,
	}
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		item := doc.FindItem(itemID)
		if item == nil {
			return domain.ErrNotFound
		}
		if item.EffectiveStatus() == entity.StatusReturned {
			return domain.ErrConflict
		}
		record.ItemName = firstText(item)
		oldStatus := item.EffectiveStatus()
		item.Status = entity.StatusReturned
		doc.ReturnRecords = append(doc.ReturnRecords, record)
		doc.PushMovement(entity.Movement{
			ID:            uuid.New().String(),
			ItemID:        itemID,
			Timestamp:     now,
			UserName:      userName,
			Action:        entity.ActionReturn,
			Reason:        reason,
			ReasonText:    in.ReturnReasonText,
			FromCategory:  item.CategoryID,
			ChangedFields: []entity.FieldChange{{Field: "status", OldValue: oldStatus, NewValue: entity.StatusReturned}},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.Activity{
		Type:        entity.ActivityUpdate,
		Title:       "Item devolvido ao fornecedor",
		Description: fmt.Sprintf("Devolvido para %s (NF %s)", in.ReturnedTo, in.InvoiceNumber),
		ItemID:      itemID,
		ItemName:    record.ItemName,
	})
	return &record, nil
}

// ListRecords devuelve todos los registros de devolución.
func (uc *UseCase) ListRecords(ctx context.Context) ([]entity.ReturnRecord, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.ReturnRecords, nil
}

// RecordsByItem devuelve los registros de devolución de un item.
func (uc *UseCase) RecordsByItem(ctx context.Context, itemID string) ([]entity.ReturnRecord, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := []entity.ReturnRecord{}
	for _, r := range doc.ReturnRecords {
		if r.ItemID == itemID {
			out = append(out, r)
		}
	}
	return out, nil
}

// CreateNote da de alta una nota de devolución. Nace pendente salvo estado
// explícito y exige número de nota y al menos una línea.
func (uc *UseCase) CreateNote(ctx context.Context, in dto.CreateReturnNoteRequest, userName string) (*entity.ReturnNote, error) {
	if strings.TrimSpace(in.NumeroNota) == "" || len(in.Itens) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.NoteStatusPendente
	}
	if !entity.ValidNoteStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	data := in.Data
	if data == "" {
		data = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", data); err != nil {
		return nil, domain.ErrInvalidInput
	}

	note := entity.ReturnNote{
		ID:          uuid.New().String(),
		NumeroNota:  in.NumeroNota,
		Data:        data,
		Itens:       make([]entity.ReturnNoteItem, 0, len(in.Itens)),
		Observacoes: in.Observacoes,
		Status:      status,
		CriadoPor:   userName,
		CriadoEm:    time.Now(),
	}
	for _, it := range in.Itens {
		if strings.TrimSpace(it.Patrimonio) == "" {
			return nil, domain.ErrInvalidInput
		}
		note.Itens = append(note.Itens, entity.ReturnNoteItem{
			ID:         uuid.New().String(),
			Patrimonio: it.Patrimonio,
			Modelo:     it.Modelo,
			Marca:      it.Marca,
		})
	}
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		doc.Returns = append(doc.Returns, note)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.Activity{
		Type:        entity.ActivityCreate,
		Title:       "Nota de devolução criada",
		Description: fmt.Sprintf("Nota %s com %d item(ns)", note.NumeroNota, len(note.Itens)),
	})
	return &note, nil
}

// ListNotes devuelve todas las notas de devolución.
func (uc *UseCase) ListNotes(ctx context.Context) ([]entity.ReturnNote, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Returns, nil
}

// GetNote devuelve una nota por id.
func (uc *UseCase) GetNote(ctx context.Context, id string) (*entity.ReturnNote, error) {
	doc, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	note := doc.FindReturnNote(id)
	if note == nil {
		return nil, domain.ErrNotFound
	}
	return note, nil
}

// DeleteNote elimina una nota.
func (uc *UseCase) DeleteNote(ctx context.Context, id string) error {
	var numero string
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		for i := range doc.Returns {
			if doc.Returns[i].ID == id {
				numero = doc.Returns[i].NumeroNota
				doc.Returns = append(doc.Returns[:i], doc.Returns[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return err
	}
	uc.audit.Record(ctx, entity.Activity{
		Type:        entity.ActivityDelete,
		Title:       "Nota de devolução removida",
		Description: "Nota " + numero,
	})
	return nil
}

// ProcessNote marca la nota como processada (solo desde pendente).
func (uc *UseCase) ProcessNote(ctx context.Context, id string) (*entity.ReturnNote, error) {
	return uc.transition(ctx, id, entity.NoteStatusProcessada, "Nota de devolução processada")
}

// CancelNote marca la nota como cancelada (solo desde pendente).
func (uc *UseCase) CancelNote(ctx context.Context, id string) (*entity.ReturnNote, error) {
	return uc.transition(ctx, id, entity.NoteStatusCancelada, "Nota de devolução cancelada")
}

// ReopenNote devuelve la nota a pendente desde processada o cancelada.
func (uc *UseCase) ReopenNote(ctx context.Context, id string) (*entity.ReturnNote, error) {
	return uc.transition(ctx, id, entity.NoteStatusPendente, "Nota de devolução reaberta")
}

func (uc *UseCase) transition(ctx context.Context, id, to, title string) (*entity.ReturnNote, error) {
	var updated entity.ReturnNote
	err := uc.store.Run(ctx, func(doc *entity.Document) error {
		note := doc.FindReturnNote(id)
		if note == nil {
			return domain.ErrNotFound
		}
		if !note.CanTransition(to) {
			return domain.ErrInvalidTransition
		}
		note.Status = to
		updated = *note
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, entity.Activity{
		Type:        entity.ActivityInfo,
		Title:       title,
		Description: "Nota " + updated.NumeroNota,
	})
	return &updated, nil
}

// NotePDF genera el PDF imprimible de la nota.
func (uc *UseCase) NotePDF(ctx context.Context, id string) ([]byte, error) {
	note, err := uc.GetNote(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateNotePDF(note)
}

// firstText toma el primer valor textual poblado (claves en orden
// alfabético) como nombre presentable.
func firstText(item *entity.Item) string {
	for _, k := range item.PopulatedKeys() {
		if s, ok := item.Value(k).(string); ok && s != "" {
			return s
		}
	}
	return ""
}
