package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/application/movement"
)

// MovementHandler expone el historial global de movimientos y el feed de
// actividades.
type MovementHandler struct {
	engine *movement.Engine
	audit  *audit.Recorder
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *movement.Engine, rec *audit.Recorder) *MovementHandler {
	return &MovementHandler{engine: engine, audit: rec}
}

// List godoc
// @Summary      Historial global de movimientos
// @Tags         movements
// @Produce      json
// @Param        limit  query  int  false  "máximo de registros"
// @Success      200  {array}  entity.Movement
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	movs, err := h.engine.Recent(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(movs)
}

// Activities godoc
// @Summary      Feed de actividades recientes
// @Tags         movements
// @Produce      json
// @Param        limit  query  int  false  "máximo de entradas"
// @Success      200  {array}  entity.Activity
// @Router       /api/activities [get]
func (h *MovementHandler) Activities(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	acts, err := h.audit.Recent(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(acts)
}
