package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/application/inventory"
)

// LocationHandler maneja las peticiones HTTP de ubicaciones de stock.
type LocationHandler struct {
	uc *inventory.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *inventory.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ubicación de stock
// @Tags         stock-locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockLocationRequest  true  "Datos de la ubicación"
// @Success      201   {object}  dto.StockLocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockLocationRequest
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
// @Summary      Obtener ubicación por ID
// @Tags         stock-locations
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.StockLocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ubicación
// @Tags         stock-locations
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la ubicación"
// @Param        body  body  dto.UpdateStockLocationRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.StockLocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-locations/{id} [patch]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         stock-locations
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.StockLocationListResponse
// @Router       /api/stock-locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
