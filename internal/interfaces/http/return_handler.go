package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/application/returns"
	"github.com/jhoicas/patrimonio-api/internal/domain"
)

// ReturnHandler maneja devoluciones al proveedor y notas de devolución.
type ReturnHandler struct {
	uc *returns.UseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *returns.UseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

// ReturnItem godoc
// @Summary      Devolver un item al proveedor
// @Description  Marca el item como returned, agrega el registro de devolución
// @Description  y el movimiento en la misma escritura.
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "id del item"
// @Param        body  body  dto.ReturnItemRequest  true  "returnedTo, invoiceNumber, invoiceDate"
// @Success      201   {object}  entity.ReturnRecord
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/return [post]
func (h *ReturnHandler) ReturnItem(c *fiber.Ctx) error {
	var in dto.ReturnItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.uc.CreateRecord(c.Context(), c.Params("id"), in, GetUserName(c))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RETURNED", Message: "el item ya fue devuelto"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "returnedTo, invoiceNumber e invoiceDate (AAAA-MM-DD) son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListRecords godoc
// @Summary      Listar registros de devolución
// @Tags         returns
// @Produce      json
// @Success      200  {array}  entity.ReturnRecord
// @Router       /api/returns [get]
func (h *ReturnHandler) ListRecords(c *fiber.Ctx) error {
	records, err := h.uc.ListRecords(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(records)
}

// CreateNote godoc
// @Summary      Crear nota de devolución
// @Tags         return-notes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnNoteRequest  true  "numeroNota, itens"
// @Success      201   {object}  entity.ReturnNote
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/return-notes [post]
func (h *ReturnHandler) CreateNote(c *fiber.Ctx) error {
	var in dto.CreateReturnNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	note, err := h.uc.CreateNote(c.Context(), in, GetUserName(c))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numeroNota y al menos un item con patrimônio son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

// ListNotes godoc
// @Summary      Listar notas de devolución
// @Tags         return-notes
// @Produce      json
// @Success      200  {array}  entity.ReturnNote
// @Router       /api/return-notes [get]
func (h *ReturnHandler) ListNotes(c *fiber.Ctx) error {
	notes, err := h.uc.ListNotes(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(notes)
}

// GetNote godoc
// @Summary      Obtener una nota de devolución
// @Tags         return-notes
// @Produce      json
// @Param        id  path  string  true  "id de la nota"
// @Success      200  {object}  entity.ReturnNote
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/return-notes/{id} [get]
func (h *ReturnHandler) GetNote(c *fiber.Ctx) error {
	note, err := h.uc.GetNote(c.Context(), c.Params("id"))
	if err != nil {
		return noteError(c, err)
	}
	return c.JSON(note)
}

// DeleteNote godoc
// @Summary      Eliminar una nota de devolución
// @Tags         return-notes
// @Produce      json
// @Param        id  path  string  true  "id de la nota"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/return-notes/{id} [delete]
func (h *ReturnHandler) DeleteNote(c *fiber.Ctx) error {
	if err := h.uc.DeleteNote(c.Context(), c.Params("id")); err != nil {
		return noteError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ProcessNote godoc
// @Summary      Marcar una nota como processada
// @Tags         return-notes
// @Produce      json
// @Param        id  path  string  true  "id de la nota"
// @Success      200  {object}  entity.ReturnNote
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/return-notes/{id}/process [post]
func (h *ReturnHandler) ProcessNote(c *fiber.Ctx) error {
	note, err := h.uc.ProcessNote(c.Context(), c.Params("id"))
	if err != nil {
		return noteError(c, err)
	}
	return c.JSON(note)
}

// CancelNote godoc
// @Summary      Marcar una nota como cancelada
// @Tags         return-notes
// @Produce      json
// @Param        id  path  string  true  "id de la nota"
// @Success      200  {object}  entity.ReturnNote
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/return-notes/{id}/cancel [post]
func (h *ReturnHandler) CancelNote(c *fiber.Ctx) error {
	note, err := h.uc.CancelNote(c.Context(), c.Params("id"))
	if err != nil {
		return noteError(c, err)
	}
	return c.JSON(note)
}

// ReopenNote godoc
// @Summary      Reabrir una nota (volver a pendente)
// @Tags         return-notes
// @Produce      json
// @Param        id  path  string  true  "id de la nota"
// @Success      200  {object}  entity.ReturnNote
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/return-notes/{id}/reopen [post]
func (h *ReturnHandler) ReopenNote(c *fiber.Ctx) error {
	note, err := h.uc.ReopenNote(c.Context(), c.Params("id"))
	if err != nil {
		return noteError(c, err)
	}
	return c.JSON(note)
}

// NotePDF godoc
// @Summary      PDF imprimible de la nota
// @Tags         return-notes
// @Produce      application/pdf
// @Param        id  path  string  true  "id de la nota"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/return-notes/{id}/pdf [get]
func (h *ReturnHandler) NotePDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.NotePDF(c.Context(), c.Params("id"))
	if err != nil {
		return noteError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="nota-devolucao.pdf"`)
	return c.Send(pdfBytes)
}

// noteError mapea errores del agregado de notas a HTTP.
func noteError(c *fiber.Ctx, err error) error {
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota no encontrada"})
	}
	if err == domain.ErrInvalidTransition {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
