package inventory

import (
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// Errores de StockItem. Los parametrizados comparan por código con errors.Is.
var (
	ErrInvalidQuantity        = domain.Validation("StockItem.InvalidQuantity", "la cantidad debe ser mayor que cero")
	ErrInsufficientStock      = domain.Validation("StockItem.InsufficientStock", "stock insuficiente")
	ErrBackorderLimitExceeded = domain.Validation("StockItem.BackorderLimitExceeded", "se supera el límite de backorder")
	ErrInvalidRelease         = domain.Validation("StockItem.InvalidRelease", "cantidad a liberar inválida")
	ErrInvalidShipment        = domain.Validation("StockItem.InvalidShipment", "cantidad a enviar inválida")
	ErrInvariantViolated      = domain.Failure("StockItem.InvariantViolated", "estado de stock inconsistente")
	ErrStockItemNotFound      = domain.NotFound("StockItem.NotFound", "stock item no encontrado")
	ErrDuplicateSku           = domain.Conflict("StockItem.DuplicateSku", "el SKU ya existe en la ubicación")
)

// Errores de StockTransfer.
var (
	ErrTransferNotFound       = domain.NotFound("StockTransfer.NotFound", "traslado no encontrado")
	ErrStockLocationNotFound  = domain.NotFound("StockTransfer.StockLocationNotFound", "la ubicación no corresponde al traslado")
	ErrDestinationRequired    = domain.Validation("StockTransfer.DestinationRequired", "la ubicación destino es obligatoria")
	ErrSameLocation           = domain.Validation("StockTransfer.SameLocation", "origen y destino no pueden ser iguales")
	ErrEmptyItems             = domain.Validation("StockTransfer.EmptyItems", "el traslado no tiene líneas")
	ErrDuplicateVariant       = domain.Validation("StockTransfer.DuplicateVariant", "variante repetida en el traslado")
	ErrInvalidStateTransition = domain.Validation("StockTransfer.InvalidStateTransition", "transición de estado inválida")
	ErrAlreadyInTerminalState = domain.Validation("StockTransfer.AlreadyInTerminalState", "el traslado ya está finalizado")
	ErrNotAReceipt            = domain.Validation("StockTransfer.NotAReceipt", "el traslado tiene origen; use Transfer")
	ErrPartialFailure         = domain.Failure("StockTransfer.PartialFailure", "el traslado se aplicó parcialmente")
	ErrStockLocationMissing   = domain.NotFound("StockLocation.NotFound", "ubicación no encontrada")
	ErrNumberGeneratorNotSet  = domain.Failure("StockTransfer.NumberUnavailable", "no hay generador de números configurado")
)

// InsufficientStock error parametrizado con variante, disponible y solicitado.
func InsufficientStock(variantID string, available, requested int) *domain.Error {
	return domain.Validation(ErrInsufficientStock.Code,
		fmt.Sprintf("stock insuficiente para variante %s: disponible=%d, solicitado=%d", variantID, available, requested))
}

// BackorderLimitExceeded error parametrizado con el déficit resultante y el límite.
func BackorderLimitExceeded(variantID string, deficit, limit int) *domain.Error {
	return domain.Validation(ErrBackorderLimitExceeded.Code,
		fmt.Sprintf("backorder de variante %s quedaría en %d, límite %d", variantID, deficit, limit))
}

// InvalidQuantity error parametrizado por variante.
func InvalidQuantity(variantID string, quantity int) *domain.Error {
	return domain.Validation(ErrInvalidQuantity.Code,
		fmt.Sprintf("cantidad inválida para variante %s: %d", variantID, quantity))
}
