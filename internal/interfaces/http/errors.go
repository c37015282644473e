package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// statusFor traduce el tipo de error de dominio a código HTTP.
func statusFor(t domain.ErrorType) int {
	switch t {
	case domain.ErrorTypeValidation:
		return fiber.StatusBadRequest
	case domain.ErrorTypeNotFound:
		return fiber.StatusNotFound
	case domain.ErrorTypeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con el código del primer error de dominio y lista todos en details.
// Un error sin tipo de dominio es 500 INTERNAL.
func writeError(c *fiber.Ctx, err error) error {
	de, ok := domain.AsError(err)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	res := dto.ErrorResponse{Code: de.Code, Message: de.Description}
	if all := domain.Details(err); len(all) > 1 {
		for _, d := range all {
			res.Details = append(res.Details, dto.ErrorDetail{Code: d.Code, Message: d.Description})
		}
	}
	return c.Status(statusFor(de.Type)).JSON(res)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// pageFromQuery limit/offset con los límites de dto.PageRequest.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	return page
}
