package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/stock"
	"github.com/jhoicas/logistica-api/internal/domain"
)

// StockHandler maneja el stock regulador, el stock de panelistas y los logs (protegido).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler de stock.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// ListRegulator godoc
// @Summary      Stock del regulador por material
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RegulatorStockDTO
// @Router       /api/stock/regulator [get]
func (h *StockHandler) ListRegulator(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	stocks, err := h.uc.ListRegulatorStocks(c.Context(), accountID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(stocks), "stocks": stocks})
}

// UpsertRegulator godoc
// @Summary      Ajustar el stock del regulador para un material
// @Description  Fija cantidad y niveles min/max; registra un movimiento de ajuste
//
//	por la diferencia y una alerta si queda bajo el mínimo.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertRegulatorStockRequest  true  "material_id, quantity, min/max opcionales"
// @Success      200   {object}  dto.RegulatorStockDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock/regulator [put]
func (h *StockHandler) UpsertRegulator(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	userID := GetUserID(c)
	if accountID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpsertRegulatorStockRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.UpsertRegulatorStock(c.Context(), accountID, userID, &in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad o niveles inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListPanelists godoc
// @Summary      Stock en poder de panelistas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PanelistStockDTO
// @Router       /api/stock/panelists [get]
func (h *StockHandler) ListPanelists(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	stocks, err := h.uc.ListPanelistStocks(c.Context(), accountID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(stocks), "stocks": stocks})
}

// ListMovements godoc
// @Summary      Log de movimientos de materiales
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.MovementDTO
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit y offset deben ser numéricos"})
	}
	page.DefaultPage()
	movements, err := h.uc.ListMovements(c.Context(), accountID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(movements)},
		"movements": movements,
	})
}

// ListAlerts godoc
// @Summary      Alertas de stock registradas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.StockAlertDTO
// @Router       /api/stock/alerts [get]
func (h *StockHandler) ListAlerts(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "limit y offset deben ser numéricos"})
	}
	page.DefaultPage()
	alerts, err := h.uc.ListAlerts(c.Context(), accountID, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"page":   dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(alerts)},
		"alerts": alerts,
	})
}
