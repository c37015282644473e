package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	appful "github.com/jhoicas/fulfillment-api/internal/application/fulfillment"
	"github.com/jhoicas/fulfillment-api/internal/application/inventory"
)

// OrderHandler reserva, libera y despacha el stock de un pedido.
type OrderHandler struct {
	planner      *appful.Planner
	reservations *inventory.ReservationUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(planner *appful.Planner, reservations *inventory.ReservationUseCase) *OrderHandler {
	return &OrderHandler{planner: planner, reservations: reservations}
}

// Reserve godoc
// @Summary      Planificar y reservar el stock de un pedido
// @Description  Todo o nada: si alguna línea del plan no se puede reservar no queda ninguna reserva.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true   "ID del pedido"
// @Param        body  body  dto.ReserveOrderRequest  false  "strategy"
// @Success      200   {object}  dto.OrderReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reserve [post]
func (h *OrderHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	orderID := c.Params("id")
	plan, err := h.planner.PlanOrder(c.UserContext(), orderID, in.Strategy)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.reservations.ReserveOrder(c.UserContext(), orderID, plan)
	if err != nil {
		return writeError(c, err)
	}
	out.Plan = appful.ToPlanResponse(plan)
	return c.JSON(out)
}

// Release godoc
// @Summary      Liberar las reservas de un pedido
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderReservationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/release [post]
func (h *OrderHandler) Release(c *fiber.Ctx) error {
	out, err := h.reservations.ReleaseOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ship godoc
// @Summary      Confirmar despacho de un pedido desde una ubicación
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del pedido"
// @Param        body  body  dto.ShipOrderRequest  true  "shipment_id, stock_location_id, items"
// @Success      200   {object}  dto.OrderReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.reservations.ShipOrder(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
