package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/logistica-api/internal/application/balancing"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/domain"
)

// BalancingHandler expone el preview de balanceo de carga entre nodos (protegido).
type BalancingHandler struct {
	uc *balancing.UseCase
}

// NewBalancingHandler construye el handler de balanceo.
func NewBalancingHandler(uc *balancing.UseCase) *BalancingHandler {
	return &BalancingHandler{uc: uc}
}

// Preview godoc
// @Summary      Previsualizar el balanceo de carga entre nodos
// @Description  Ejecuta el balanceador en modo simulación: devuelve los movimientos
//
//	propuestos y las matrices antes/después sin aplicar cambios.
//
// @Tags         balancing
// @Security     Bearer
// @Produce      json
// @Param        max_movements  query  int  false  "tope de movimientos a proponer (default 50, máx 200)"
// @Success      200  {object}  dto.BalancePreviewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/balancing/preview [get]
func (h *BalancingHandler) Preview(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.Preview(c.Context(), accountID, c.QueryInt("max_movements"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "max_movements fuera de rango"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
