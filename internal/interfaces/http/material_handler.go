package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/logistica-api/internal/application/catalog"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
)

// MaterialHandler expone el catálogo de materiales (protegido).
type MaterialHandler struct {
	uc *catalog.UseCase
}

// NewMaterialHandler construye el handler del catálogo.
func NewMaterialHandler(uc *catalog.UseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// List godoc
// @Summary      Listar materiales del catálogo
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active | inactive; vacío = todos"
// @Success      200  {array}   dto.MaterialDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	materials, err := h.uc.ListMaterials(c.Context(), accountID, c.Query("status"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser active o inactive"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(materials), "materials": materials})
}
