package inventory

import (
	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
)

func toStockItemResponse(s *inventory.StockItem) *dto.StockItemResponse {
	if s == nil {
		return nil
	}
	res := make([]dto.ReservationResponse, 0, len(s.Reservations))
	for _, r := range s.Reservations {
		res = append(res, dto.ReservationResponse{OrderID: r.OrderID, Quantity: r.Quantity})
	}
	return &dto.StockItemResponse{
		ID:                   s.ID,
		VariantID:            s.VariantID,
		StockLocationID:      s.StockLocationID,
		SKU:                  s.SKU,
		QuantityOnHand:       s.QuantityOnHand,
		QuantityReserved:     s.QuantityReserved,
		CountAvailable:       s.CountAvailable(),
		BackorderQuantity:    s.BackorderQuantity(),
		Backorderable:        s.Backorderable,
		MaxBackorderQuantity: s.MaxBackorderQuantity,
		Reservations:         res,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
		DeletedAt:            s.DeletedAt,
	}
}

func toMovementResponses(list []inventory.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:           m.ID,
			StockItemID:  m.StockItemID,
			Quantity:     m.Quantity,
			Originator:   string(m.Originator),
			OriginatorID: m.OriginatorID,
			Action:       string(m.Action),
			Reason:       m.Reason,
			CreatedAt:    m.CreatedAt,
		})
	}
	return out
}

func toTransferResponse(t *inventory.StockTransfer, movements []inventory.StockMovement) *dto.StockTransferResponse {
	if t == nil {
		return nil
	}
	return &dto.StockTransferResponse{
		ID:                    t.ID,
		Number:                t.Number,
		Reference:             t.Reference,
		SourceLocationID:      t.SourceLocationID,
		DestinationLocationID: t.DestinationLocationID,
		State:                 string(t.State),
		FinalizedReason:       t.FinalizedReason,
		RejectionReason:       t.RejectionReason,
		Movements:             toMovementResponses(movements),
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
		FinalizedAt:           t.FinalizedAt,
	}
}

func toLocationResponse(l *inventory.StockLocation) *dto.StockLocationResponse {
	if l == nil {
		return nil
	}
	return &dto.StockLocationResponse{
		ID:                   l.ID,
		Name:                 l.Name,
		Code:                 l.Code,
		Latitude:             l.Latitude,
		Longitude:            l.Longitude,
		Active:               l.Active,
		ShipEnabled:          l.ShipEnabled,
		PickupEnabled:        l.PickupEnabled,
		BackorderableDefault: l.BackorderableDefault,
		PublicMetadata:       l.PublicMetadata,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

func toErrorDetails(err error) []dto.ErrorDetail {
	details := domain.Details(err)
	out := make([]dto.ErrorDetail, 0, len(details))
	for _, d := range details {
		out = append(out, dto.ErrorDetail{Code: d.Code, Message: d.Description})
	}
	return out
}

func toTransferLines(in []dto.TransferLineRequest) []inventory.TransferLine {
	out := make([]inventory.TransferLine, 0, len(in))
	for _, l := range in {
		out = append(out, inventory.TransferLine{VariantID: l.VariantID, SKU: l.SKU, Quantity: l.Quantity})
	}
	return out
}
