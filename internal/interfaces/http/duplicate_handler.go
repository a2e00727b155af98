package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/application/usecase"
)

// DuplicateHandler maneja el informe de duplicados y su configuración.
type DuplicateHandler struct {
	uc *usecase.DuplicateUseCase
}

// NewDuplicateHandler construye el handler.
func NewDuplicateHandler(uc *usecase.DuplicateUseCase) *DuplicateHandler {
	return &DuplicateHandler{uc: uc}
}

// Report godoc
// @Summary      Barrido completo de duplicados
// @Description  Grupos de items que comparten el valor normalizado de algún
// @Description  campo vigilado, ordenados por tamaño descendente.
// @Tags         duplicates
// @Produce      json
// @Success      200  {array}  dto.DuplicateGroupDTO
// @Router       /api/duplicates/report [get]
func (h *DuplicateHandler) Report(c *fiber.Ctx) error {
	groups, err := h.uc.Report(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(groups)
}

// GetConfig godoc
// @Summary      Configuración vigente del detector
// @Tags         duplicates
// @Produce      json
// @Success      200  {object}  dto.DuplicateConfigResponse
// @Router       /api/duplicates/config [get]
func (h *DuplicateHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.uc.GetConfig(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cfg)
}

// SetConfig godoc
// @Summary      Reemplazar el conjunto de campos vigilados (solo admin)
// @Tags         duplicates
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DuplicateConfigRequest  true  "fields"
// @Success      200   {object}  dto.DuplicateConfigResponse
// @Router       /api/duplicates/config [put]
func (h *DuplicateHandler) SetConfig(c *fiber.Ctx) error {
	var in dto.DuplicateConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cfg, err := h.uc.SetConfig(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(cfg)
}
