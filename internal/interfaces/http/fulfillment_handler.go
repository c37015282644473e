package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	appful "github.com/jhoicas/fulfillment-api/internal/application/fulfillment"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/fulfillment"
)

// FulfillmentHandler planificación de despachos.
type FulfillmentHandler struct {
	planner *appful.Planner
}

// NewFulfillmentHandler construye el handler.
func NewFulfillmentHandler(planner *appful.Planner) *FulfillmentHandler {
	return &FulfillmentHandler{planner: planner}
}

// Plan godoc
// @Summary      Planificar despacho de un pedido
// @Description  order_id planifica un pedido guardado; order planifica uno en línea sin guardarlo.
// @Tags         fulfillment
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanFulfillmentRequest  true  "order_id u order, strategy"
// @Success      200   {object}  dto.FulfillmentPlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fulfillment/plan [post]
func (h *FulfillmentHandler) Plan(c *fiber.Ctx) error {
	var in dto.PlanFulfillmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	var (
		plan *fulfillment.PlanResult
		err  error
	)
	switch {
	case in.Order != nil:
		plan, err = h.planner.PlanFulfillment(c.UserContext(), appful.OrderFromInput(in.Order), in.Strategy)
	case in.OrderID != "":
		plan, err = h.planner.PlanOrder(c.UserContext(), in.OrderID, in.Strategy)
	default:
		err = domain.Validation(domain.ErrInvalidInput.Code, "order_id u order es requerido")
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(appful.ToPlanResponse(plan))
}

// Allocations godoc
// @Summary      Repartir cantidad de una variante entre ubicaciones
// @Tags         fulfillment
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocationRequest  true  "variant_id, quantity, strategy, max_locations"
// @Success      200   {object}  dto.AllocationListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fulfillment/allocations [post]
func (h *FulfillmentHandler) Allocations(c *fiber.Ctx) error {
	var in dto.AllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.planner.SuggestAllocations(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Strategies godoc
// @Summary      Estrategias de despacho disponibles
// @Tags         fulfillment
// @Produce      json
// @Success      200  {object}  dto.StrategyListResponse
// @Router       /api/fulfillment/strategies [get]
func (h *FulfillmentHandler) Strategies(c *fiber.Ctx) error {
	return c.JSON(h.planner.Strategies())
}
