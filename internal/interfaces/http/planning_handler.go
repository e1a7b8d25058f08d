package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/logistica-api/internal/application/dto"
	"github.com/jhoicas/logistica-api/internal/application/planning"
	"github.com/jhoicas/logistica-api/internal/domain"
)

// PlanningHandler maneja el cálculo de necesidades y las propuestas de envío (protegido).
type PlanningHandler struct {
	calculate *planning.CalculateUseCase
	propose   *planning.ProposeShipmentsUseCase
	commit    *planning.CommitShipmentsUseCase
}

// NewPlanningHandler construye el handler de planificación.
func NewPlanningHandler(
	calculate *planning.CalculateUseCase,
	propose *planning.ProposeShipmentsUseCase,
	commit *planning.CommitShipmentsUseCase,
) *PlanningHandler {
	return &PlanningHandler{calculate: calculate, propose: propose, commit: commit}
}

// Calculate godoc
// @Summary      Calcular necesidades de materiales de una ventana
// @Tags         planning
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PeriodRequest  true  "start_date, end_date (YYYY-MM-DD)"
// @Success      200   {array}   dto.RequirementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/planning/requirements/calculate [post]
func (h *PlanningHandler) Calculate(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PeriodRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	start, end, ok := in.Window()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "end_date no puede ser anterior a start_date"})
	}
	reqs, err := h.calculate.Calculate(c.Context(), accountID, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(reqs), "requirements": reqs})
}

// ListRequirements godoc
// @Summary      Necesidades abiertas de una ventana
// @Tags         planning
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true  "YYYY-MM-DD"
// @Param        end_date    query  string  true  "YYYY-MM-DD"
// @Success      200  {array}   dto.RequirementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/planning/requirements [get]
func (h *PlanningHandler) ListRequirements(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	in := dto.PeriodRequest{StartDate: c.Query("start_date"), EndDate: c.Query("end_date")}
	start, end, ok := in.Window()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "start_date y end_date (YYYY-MM-DD) son requeridos y en orden"})
	}
	reqs, err := h.calculate.ListRequirements(c.Context(), accountID, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(reqs), "requirements": reqs})
}

// ProposeShipments godoc
// @Summary      Proponer envíos consolidados por panelista
// @Tags         planning
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PeriodRequest  true  "start_date, end_date (YYYY-MM-DD)"
// @Success      200   {object}  dto.ProposeShipmentsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/planning/shipments/propose [post]
func (h *PlanningHandler) ProposeShipments(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	if accountID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.PeriodRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	start, end, ok := in.Window()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "end_date no puede ser anterior a start_date"})
	}
	out, err := h.propose.Propose(c.Context(), accountID, start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CommitShipments godoc
// @Summary      Consolidar propuestas aceptadas en envíos pendientes
// @Tags         planning
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitShipmentsRequest  true  "propuestas con panelista y materiales"
// @Success      201   {array}   dto.ShipmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/planning/shipments/commit [post]
func (h *PlanningHandler) CommitShipments(c *fiber.Ctx) error {
	accountID := GetAccountID(c)
	userID := GetUserID(c)
	if accountID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CommitShipmentsRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	shipments, err := h.commit.Commit(c.Context(), accountID, userID, &in)
	if err != nil {
		if errors.Is(err, domain.ErrMissingPanelist) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_PANELIST", Message: "hay propuestas sin panelista asignado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "propuestas inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"total": len(shipments), "shipments": shipments})
}
