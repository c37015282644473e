package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/inventory"
)

// TransferHandler maneja las peticiones HTTP de traslados de stock.
type TransferHandler struct {
	uc *inventory.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *inventory.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear traslado (sin origen = recepción de proveedor)
// @Tags         stock-transfers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockTransferRequest  true  "source_location_id, destination_location_id, reference"
// @Success      201   {object}  dto.StockTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener traslado con sus movimientos
// @Tags         stock-transfers
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.StockTransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Ejecutar traslado entre ubicaciones
// @Tags         stock-transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del traslado"
// @Param        body  body  dto.ExecuteTransferRequest  true  "Líneas a mover"
// @Success      200   {object}  dto.StockTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-transfers/{id}/transfer [post]
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var in dto.ExecuteTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.respond(c)(h.uc.Transfer(c.UserContext(), c.Params("id"), in))
}

// Receive godoc
// @Summary      Recibir mercancía en el destino
// @Tags         stock-transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del traslado"
// @Param        body  body  dto.ExecuteTransferRequest  true  "Líneas recibidas"
// @Success      200   {object}  dto.StockTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	var in dto.ExecuteTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.respond(c)(h.uc.Receive(c.UserContext(), c.Params("id"), in))
}

// Cancel godoc
// @Summary      Cancelar traslado pendiente
// @Tags         stock-transfers
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.StockTransferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock-transfers/{id}/cancel [post]
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	return h.respond(c)(h.uc.Cancel(c.UserContext(), c.Params("id")))
}

// Reject godoc
// @Summary      Rechazar traslado pendiente
// @Tags         stock-transfers
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del traslado"
// @Param        body  body  dto.RejectTransferRequest  true  "Motivo"
// @Success      200   {object}  dto.StockTransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.respond(c)(h.uc.Reject(c.UserContext(), c.Params("id"), in))
}

func (h *TransferHandler) respond(c *fiber.Ctx) func(*dto.StockTransferResponse, error) error {
	return func(out *dto.StockTransferResponse, err error) error {
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
