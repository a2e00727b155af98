package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/application/items"
	"github.com/jhoicas/patrimonio-api/internal/application/movement"
	"github.com/jhoicas/patrimonio-api/internal/domain"
)

// ItemHandler maneja el CRUD de items, el protocolo de confirmación de
// duplicados y las transferencias field_split.
type ItemHandler struct {
	items  *items.UseCase
	engine *movement.Engine
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *items.UseCase, engine *movement.Engine) *ItemHandler {
	return &ItemHandler{items: uc, engine: engine}
}

// ListByCategory godoc
// @Summary      Listar items de una categoría
// @Tags         items
// @Produce      json
// @Param        id  path  string  true  "id de la categoría"
// @Success      200  {array}  entity.Item
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/items [get]
func (h *ItemHandler) ListByCategory(c *fiber.Ctx) error {
	out, err := h.items.ListByCategory(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener un item
// @Tags         items
// @Produce      json
// @Param        id  path  string  true  "id del item"
// @Success      200  {object}  entity.Item
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	item, err := h.items.Get(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(item)
}

// Create godoc
// @Summary      Crear item (escritura propuesta)
// @Description  Sin colisiones en campos vigilados responde 201 con el item
// @Description  persistido. Con colisiones responde 409 con pendingId y las
// @Description  coincidencias; la escritura queda a la espera de
// @Description  confirm/cancel.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "categoryId, status opcional, values"
// @Success      201   {object}  entity.Item
// @Failure      409   {object}  dto.PendingWriteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.items.Create(c.Context(), in, GetUserName(c))
	if err != nil {
		return itemError(c, err)
	}
	if out.Pending != nil {
		return c.Status(fiber.StatusConflict).JSON(out.Pending)
	}
	return c.Status(fiber.StatusCreated).JSON(out.Committed)
}

// Update godoc
// @Summary      Editar item (escritura propuesta)
// @Description  Si cambió algún campo con valor anterior y no se indicó
// @Description  disposition (stock|maintenance|discard) responde 409 con los
// @Description  campos alterados. Después aplica el mismo protocolo de
// @Description  duplicados que el alta, excluyendo el propio item.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id           path   string           true   "id del item"
// @Param        disposition  query  string           false  "stock | maintenance | discard"
// @Param        body         body   dto.ItemRequest  true   "status y values nuevos"
// @Success      200  {object}  entity.Item
// @Failure      409  {object}  dto.PendingWriteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.items.Update(c.Context(), c.Params("id"), in, c.Query("disposition"), GetUserName(c))
	if err != nil {
		return itemError(c, err)
	}
	if out.Disposition != nil {
		return c.Status(fiber.StatusConflict).JSON(out.Disposition)
	}
	if out.Pending != nil {
		return c.Status(fiber.StatusConflict).JSON(out.Pending)
	}
	return c.JSON(out.Committed)
}

// Confirm godoc
// @Summary      Confirmar una escritura suspendida por duplicados
// @Tags         items
// @Produce      json
// @Param        id  path  string  true  "pendingId"
// @Success      200  {object}  entity.Item
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/pending/{id}/confirm [post]
func (h *ItemHandler) Confirm(c *fiber.Ctx) error {
	item, err := h.items.Confirm(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrPendingNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PENDING_NOT_FOUND", Message: "escritura pendiente no encontrada"})
		}
		return itemError(c, err)
	}
	return c.JSON(item)
}

// Cancel godoc
// @Summary      Cancelar una escritura suspendida por duplicados
// @Tags         items
// @Produce      json
// @Param        id  path  string  true  "pendingId"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/pending/{id}/cancel [post]
func (h *ItemHandler) Cancel(c *fiber.Ctx) error {
	if err := h.items.Cancel(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PENDING_NOT_FOUND", Message: "escritura pendiente no encontrada"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar un item
// @Tags         items
// @Produce      json
// @Param        id  path  string  true  "id del item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.items.Delete(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "item no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Split godoc
// @Summary      Mover un subconjunto de campos a estoque o manutenção
// @Description  Crea un item nuevo en la categoría sintética del estado
// @Description  destino con los campos seleccionados, los limpia en el origen
// @Description  (eliminándolo si queda vacío) y registra un movimiento
// @Description  field_split, todo en una sola escritura.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "id del item origen"
// @Param        body  body  dto.SplitItemRequest  true  "selectedFields, targetStatus, reason"
// @Success      200   {object}  movement.SplitResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/{id}/split [post]
func (h *ItemHandler) Split(c *fiber.Ctx) error {
	var in dto.SplitItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.engine.Split(c.Context(), movement.SplitInput{
		ItemID:         c.Params("id"),
		SelectedFields: in.SelectedFields,
		TargetStatus:   in.TargetStatus,
		Reason:         in.Reason,
		ReasonText:     in.ReasonText,
		UserName:       GetUserName(c),
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fields, targetStatus y reason válidos son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// History godoc
// @Summary      Historial de movimientos de un item
// @Tags         movements
// @Produce      json
// @Param        id  path  string  true  "id del item"
// @Success      200  {array}  entity.Movement
// @Router       /api/items/{id}/history [get]
func (h *ItemHandler) History(c *fiber.Ctx) error {
	movs, err := h.engine.ItemHistory(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(movs)
}

// itemError mapea errores de dominio del flujo de items a HTTP. Los errores
// de validación vienen envueltos con contexto, por eso errors.Is.
func itemError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
