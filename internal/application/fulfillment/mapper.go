package fulfillment

import (
	"github.com/google/uuid"

	"github.com/jhoicas/fulfillment-api/internal/application/dto"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/fulfillment-api/internal/domain/fulfillment"
)

// ToPlanResponse convierte el plan a su DTO.
func ToPlanResponse(p *fulfillment.PlanResult) *dto.FulfillmentPlanResponse {
	if p == nil {
		return nil
	}
	shipments := make([]dto.ShipmentPlanResponse, 0, len(p.Shipments))
	for _, sh := range p.Shipments {
		items := make([]dto.FulfillmentItemResponse, 0, len(sh.Items))
		for _, it := range sh.Items {
			items = append(items, dto.FulfillmentItemResponse{
				LineItemID:    it.LineItemID,
				VariantID:     it.VariantID,
				Quantity:      it.Quantity,
				IsBackordered: it.IsBackordered,
			})
		}
		shipments = append(shipments, dto.ShipmentPlanResponse{
			LocationID:   sh.LocationID,
			LocationName: sh.LocationName,
			Items:        items,
		})
	}
	return &dto.FulfillmentPlanResponse{
		Strategy:             string(p.Strategy),
		Shipments:            shipments,
		IsFullyFulfillable:   p.IsFullyFulfillable,
		IsPartialFulfillment: p.IsPartialFulfillment,
		UnfulfilledLineItems: p.UnfulfilledLineItems,
	}
}

// OrderFromInput arma un pedido en memoria a partir del cuerpo de la solicitud.
// Las líneas sin ID reciben uno generado para poder reportarlas en el plan.
func OrderFromInput(in *dto.OrderInput) *entity.Order {
	if in == nil {
		return nil
	}
	o := &entity.Order{
		ID:            in.ID,
		Number:        in.Number,
		ShipLatitude:  in.ShipLatitude,
		ShipLongitude: in.ShipLongitude,
		LineItems:     make([]entity.LineItem, 0, len(in.LineItems)),
	}
	for _, li := range in.LineItems {
		id := li.ID
		if id == "" {
			id = uuid.New().String()
		}
		o.LineItems = append(o.LineItems, entity.LineItem{
			ID:        id,
			OrderID:   in.ID,
			VariantID: li.VariantID,
			Quantity:  li.Quantity,
		})
	}
	return o
}
