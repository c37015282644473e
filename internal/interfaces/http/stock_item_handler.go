package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/inventory"
)

// StockItemHandler maneja las peticiones HTTP de stock por variante y ubicación.
type StockItemHandler struct {
	uc *inventory.StockUseCase
}

// NewStockItemHandler construye el handler.
func NewStockItemHandler(uc *inventory.StockUseCase) *StockItemHandler {
	return &StockItemHandler{uc: uc}
}

// Create godoc
// @Summary      Crear stock item
// @Tags         stock-items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "stock_location_id, variant_id, sku, quantity_on_hand"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-items [post]
func (h *StockItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateStockItem(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener stock item
// @Tags         stock-items
// @Produce      json
// @Param        id   path  string  true  "ID del stock item"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [get]
func (h *StockItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetStockItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar stock item (borrado lógico)
// @Tags         stock-items
// @Param        id   path  string  true  "ID del stock item"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id} [delete]
func (h *StockItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteStockItem(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Adjust godoc
// @Summary      Ajustar on-hand (delta firmado)
// @Tags         stock-items
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del stock item"
// @Param        body  body  dto.AdjustStockRequest  true  "quantity, originator, reason"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/adjust [post]
func (h *StockItemHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.respond(c)(h.uc.Adjust(c.UserContext(), c.Params("id"), in))
}

// Reserve godoc
// @Summary      Reservar cantidad
// @Tags         stock-items
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del stock item"
// @Param        body  body  dto.ReserveStockRequest  true  "quantity, order_id"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/reserve [post]
func (h *StockItemHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.respond(c)(h.uc.Reserve(c.UserContext(), c.Params("id"), in))
}

// Release godoc
// @Summary      Liberar reserva
// @Tags         stock-items
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del stock item"
// @Param        body  body  dto.ReleaseStockRequest  true  "quantity, order_id"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/release [post]
func (h *StockItemHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.respond(c)(h.uc.Release(c.UserContext(), c.Params("id"), in))
}

// Ship godoc
// @Summary      Confirmar envío
// @Tags         stock-items
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del stock item"
// @Param        body  body  dto.ConfirmShipmentRequest  true  "quantity, shipment_id, order_id"
// @Success      200   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-items/{id}/ship [post]
func (h *StockItemHandler) Ship(c *fiber.Ctx) error {
	var in dto.ConfirmShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.respond(c)(h.uc.ConfirmShipment(c.UserContext(), c.Params("id"), in))
}

// Movements godoc
// @Summary      Libro de movimientos del item
// @Tags         stock-items
// @Produce      json
// @Param        id      path   string  true   "ID del stock item"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.StockMovementListResponse
// @Router       /api/stock-items/{id}/movements [get]
func (h *StockItemHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.UserContext(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar invariantes del item
// @Tags         stock-items
// @Produce      json
// @Param        id   path  string  true  "ID del stock item"
// @Success      200  {object}  dto.InvariantReport
// @Router       /api/stock-items/{id}/verify [get]
func (h *StockItemHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.VerifyStockItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *StockItemHandler) respond(c *fiber.Ctx) func(*dto.StockItemResponse, error) error {
	return func(out *dto.StockItemResponse, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
