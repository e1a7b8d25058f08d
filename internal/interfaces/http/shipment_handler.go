package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/planning"
	"github.com/jhoicas/logistica-api/internal/domain"
)

// ShipmentHandler maneja las acciones sobre envíos (protegido).
type ShipmentHandler struct {
	uc *planning.ShipmentActionsUseCase
}

// NewShipmentHandler construye el handler de envíos.
func NewShipmentHandler(uc *planning.ShipmentActionsUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar envíos de la cuenta
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ShipmentDTO
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	shipments, err := h.uc.List(c.Context(), accountID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(shipments), "shipments": shipments})
}

// Confirm godoc
// @Summary      Confirmar el despacho de un envío pendiente
// @Description  Mueve stock del regulador al panelista por cada ítem confirmado.
//
//	Los ítems del envío ausentes de la confirmación se re-emiten en un
//	nuevo envío pendiente.
//
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del envío"
// @Param        body  body  dto.ConfirmShipmentRequest  true  "sent_date e ítems confirmados"
// @Success      200   {object}  dto.ConfirmShipmentResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/confirm [post]
func (h *ShipmentHandler) Confirm(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	userID := GetUserID(c)
	if accountID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	var in dto.ConfirmShipmentRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	result, err := h.uc.Confirm(c.Context(), accountID, userID, id, &in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "envío no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "solo los envíos pendientes se pueden confirmar"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "confirmación inválida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// Delete godoc
// @Summary      Eliminar un envío con sus ítems
// @Tags         shipments
// @Security     Bearer
// @Param        id  path  string  true  "ID del envío"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Delete(c.Context(), accountID, c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "envío no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
