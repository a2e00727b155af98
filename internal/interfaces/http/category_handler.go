package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/application/usecase"
	"github.com/jhoicas/patrimonio-api/internal/domain"
)

// CategoryHandler maneja categorías y sus campos dinámicos.
type CategoryHandler struct {
	categories *usecase.CategoryUseCase
	fields     *usecase.FieldUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(categories *usecase.CategoryUseCase, fields *usecase.FieldUseCase) *CategoryHandler {
	return &CategoryHandler{categories: categories, fields: fields}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.categories.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría (solo admin)
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name"
// @Success      201   {object}  entity.Category
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.categories.Create(c.Context(), in, GetUserName(c))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// Delete godoc
// @Summary      Eliminar categoría con cascada (solo admin)
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "id de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.categories.Delete(c.Context(), id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
		}
		if err == domain.ErrReservedCategory {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RESERVED", Message: "categoría reservada del sistema"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListFields godoc
// @Summary      Listar campos de una categoría
// @Tags         fields
// @Produce      json
// @Param        id  path  string  true  "id de la categoría"
// @Success      200  {array}  entity.Field
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/fields [get]
func (h *CategoryHandler) ListFields(c *fiber.Ctx) error {
	fields, err := h.fields.ListByCategory(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fields)
}

// CreateField godoc
// @Summary      Crear campo en una categoría (solo admin)
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "id de la categoría"
// @Param        body  body  dto.CreateFieldRequest  true  "name, key opcional, type"
// @Success      201   {object}  entity.Field
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/fields [post]
func (h *CategoryHandler) CreateField(c *fiber.Ctx) error {
	var in dto.CreateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	field, err := h.fields.Create(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "categoría no encontrada"})
		}
		if err == domain.ErrDuplicateKey {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_KEY", Message: "la key ya existe en esta categoría"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y type válidos son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(field)
}

// UpdateField godoc
// @Summary      Renombrar o retipar un campo (solo admin)
// @Tags         fields
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "id del campo"
// @Param        body  body  dto.UpdateFieldRequest  true  "name y/o type"
// @Success      200   {object}  entity.Field
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fields/{id} [put]
func (h *CategoryHandler) UpdateField(c *fiber.Ctx) error {
	var in dto.UpdateFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	field, err := h.fields.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "campo no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type desconocido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(field)
}

// DeleteField godoc
// @Summary      Eliminar un campo y limpiar sus valores (solo admin)
// @Tags         fields
// @Produce      json
// @Param        id  path  string  true  "id del campo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fields/{id} [delete]
func (h *CategoryHandler) DeleteField(c *fiber.Ctx) error {
	if err := h.fields.Delete(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "campo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
