package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/planning"
	"github.com/jhoicas/logistica-api/internal/domain"
)

// RequirementHandler maneja las acciones sobre períodos de necesidades (protegido).
type RequirementHandler struct {
	uc *planning.RequirementActionsUseCase
}

// NewRequirementHandler construye el handler de necesidades.
func NewRequirementHandler(uc *planning.RequirementActionsUseCase) *RequirementHandler {
	return &RequirementHandler{uc: uc}
}

// MarkAsOrdered godoc
// @Summary      Marcar una necesidad como pedida
// @Tags         requirements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true   "ID del período"
// @Param        body  body  dto.MarkAsOrderedRequest false  "quantity opcional; por defecto quantity_needed"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requirements/{id}/order [post]
func (h *RequirementHandler) MarkAsOrdered(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	var in dto.MarkAsOrderedRequest
	// El body es opcional: sin body se pide la cantidad completa.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	req, err := h.uc.MarkAsOrdered(c.Context(), accountID, id, in.Quantity)
	if err != nil {
		return requirementError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":               req.ID,
		"status":           req.Status,
		"quantity_ordered": req.QuantityOrdered,
	})
}

// ReceivePO godoc
// @Summary      Recibir una orden de compra al stock regulador
// @Tags         requirements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del período"
// @Param        body  body  dto.ReceivePORequest  true  "quantity recibida"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requirements/{id}/receive [post]
func (h *RequirementHandler) ReceivePO(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	userID := GetUserID(c)
	if accountID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	var in dto.ReceivePORequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.ReceivePO(c.Context(), accountID, userID, id, in.Quantity)
	if err != nil {
		return requirementError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":                req.ID,
		"status":            req.Status,
		"quantity_received": req.QuantityReceived,
	})
}

// Delete godoc
// @Summary      Eliminar un período de necesidades
// @Tags         requirements
// @Security     Bearer
// @Param        id  path  string  true  "ID del período"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requirements/{id} [delete]
func (h *RequirementHandler) Delete(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Delete(c.Context(), accountID, c.Params("id")); err != nil {
		return requirementError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// requirementError traduce errores de dominio de las acciones de necesidades a HTTP.
func requirementError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "período de necesidades no encontrado"})
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "el estado actual no permite esta acción"})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad inválida"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
