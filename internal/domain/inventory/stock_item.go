package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// UnlimitedBackorder valor de MaxBackorderQuantity sin tope.
const UnlimitedBackorder = -1

// StockReservation cantidad reservada por una orden sobre un StockItem.
// Se persiste como fila hija (stock_reservations) para que la idempotencia
// por orden sobreviva reinicios.
type StockReservation struct {
	OrderID  string
	Quantity int
}

// StockItem inventario de una variante en una ubicación.
// QuantityReserved puede superar QuantityOnHand solo si Backorderable,
// y en ese caso el déficit no supera MaxBackorderQuantity (salvo -1 = ilimitado).
type StockItem struct {
	domain.EventRecorder

	ID                   string
	VariantID            string
	StockLocationID      string
	SKU                  string
	QuantityOnHand       int
	QuantityReserved     int
	Backorderable        bool
	MaxBackorderQuantity int
	Reservations         []StockReservation
	BackorderedUnits     []*InventoryUnit
	Movements            []StockMovement // registrados desde la carga; pendientes de persistir
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time
}

// NewStockItem crea el registro para un par (variante, ubicación).
func NewStockItem(variantID, stockLocationID, sku string, backorderable bool) *StockItem {
	now := time.Now().UTC()
	return &StockItem{
		ID:                   uuid.New().String(),
		VariantID:            variantID,
		StockLocationID:      stockLocationID,
		SKU:                  sku,
		Backorderable:        backorderable,
		MaxBackorderQuantity: UnlimitedBackorder,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// CountAvailable = max(0, on-hand - reservado).
func (s *StockItem) CountAvailable() int {
	if avail := s.QuantityOnHand - s.QuantityReserved; avail > 0 {
		return avail
	}
	return 0
}

// BackorderQuantity déficit actual (reservado por encima de on-hand).
func (s *StockItem) BackorderQuantity() int {
	if d := s.QuantityReserved - s.QuantityOnHand; d > 0 {
		return d
	}
	return 0
}

// InStock indica si hay unidades disponibles.
func (s *StockItem) InStock() bool {
	return s.CountAvailable() > 0
}

// CanSupply indica si se puede comprometer quantity, con stock disponible o en backorder.
func (s *StockItem) CanSupply(quantity int) bool {
	if quantity <= 0 {
		return false
	}
	if s.CountAvailable() >= quantity {
		return true
	}
	if !s.Backorderable {
		return false
	}
	if s.MaxBackorderQuantity == UnlimitedBackorder {
		return true
	}
	return s.QuantityReserved+quantity-s.QuantityOnHand <= s.MaxBackorderQuantity
}

// ReservedFor cantidad reservada actualmente para la orden.
func (s *StockItem) ReservedFor(orderID string) (int, bool) {
	for _, r := range s.Reservations {
		if r.OrderID == orderID {
			return r.Quantity, true
		}
	}
	return 0, false
}

// Adjust aplica un delta firmado a on-hand (reposición, daño, pérdida, recuento).
// Un delta positivo en un item con backorder procesa las unidades pendientes.
func (s *StockItem) Adjust(quantity int, originator Originator, reason, originatorID string) error {
	if err := s.CanAdjust(quantity); err != nil {
		return err
	}
	s.QuantityOnHand += quantity
	s.touch()
	s.record(quantity, originator, ActionAdjustment, reason, originatorID)
	s.AddEvent(&StockAdjustedEvent{
		BaseEvent:       domain.NewBaseEvent(EventTypeStockAdjusted, AggregateTypeStockItem, s.ID),
		StockItemID:     s.ID,
		VariantID:       s.VariantID,
		StockLocationID: s.StockLocationID,
		Quantity:        quantity,
		QuantityOnHand:  s.QuantityOnHand,
		Originator:      originator,
		OriginatorID:    originatorID,
		Reason:          reason,
	})
	if quantity > 0 && s.Backorderable {
		s.processBackorders(quantity)
	}
	return nil
}

// CanAdjust valida un Adjust sin mutar el item.
func (s *StockItem) CanAdjust(quantity int) error {
	if quantity == 0 {
		return InvalidQuantity(s.VariantID, quantity)
	}
	newOnHand := s.QuantityOnHand + quantity
	if newOnHand < 0 {
		return InsufficientStock(s.VariantID, s.CountAvailable(), -quantity)
	}
	if quantity > 0 {
		return nil
	}
	if !s.Backorderable && s.QuantityReserved > newOnHand {
		return InsufficientStock(s.VariantID, s.CountAvailable(), -quantity)
	}
	if s.Backorderable && s.MaxBackorderQuantity != UnlimitedBackorder {
		if deficit := s.QuantityReserved - newOnHand; deficit > s.MaxBackorderQuantity {
			return BackorderLimitExceeded(s.VariantID, deficit, s.MaxBackorderQuantity)
		}
	}
	return nil
}

// Reserve compromete quantity para orderID. Si la orden ya tiene reserva, la llamada
// actualiza esa reserva aplicando solo la diferencia; repetir la misma cantidad no hace nada.
// orderID vacío reserva sin seguimiento por orden.
func (s *StockItem) Reserve(quantity int, orderID string) error {
	if quantity <= 0 {
		return InvalidQuantity(s.VariantID, quantity)
	}
	if orderID != "" {
		if existing, ok := s.ReservedFor(orderID); ok {
			return s.updateReservation(orderID, existing, quantity)
		}
	}
	if err := s.checkReserve(quantity); err != nil {
		return err
	}
	s.QuantityReserved += quantity
	if orderID != "" {
		s.setReservation(orderID, quantity)
	}
	s.touch()
	s.record(-quantity, OriginatorOrder, ActionReserved, "", orderID)
	s.addReserved(orderID, quantity)
	return nil
}

func (s *StockItem) updateReservation(orderID string, existing, quantity int) error {
	delta := quantity - existing
	switch {
	case delta == 0:
		return nil
	case delta > 0:
		if err := s.checkReserve(delta); err != nil {
			return err
		}
		s.QuantityReserved += delta
		s.setReservation(orderID, quantity)
		s.touch()
		s.record(-delta, OriginatorOrder, ActionReserved, "", orderID)
		s.addReserved(orderID, delta)
	default:
		released := -delta
		s.QuantityReserved -= released
		s.setReservation(orderID, quantity)
		s.touch()
		s.trimBackorders(orderID)
		s.record(released, OriginatorOrder, ActionReleased, "reserva actualizada", orderID)
		s.addReleased(orderID, released)
	}
	return nil
}

func (s *StockItem) checkReserve(quantity int) error {
	newReserved := s.QuantityReserved + quantity
	if !s.Backorderable {
		if newReserved > s.QuantityOnHand {
			return InsufficientStock(s.VariantID, s.CountAvailable(), quantity)
		}
		return nil
	}
	if s.MaxBackorderQuantity != UnlimitedBackorder {
		if deficit := newReserved - s.QuantityOnHand; deficit > s.MaxBackorderQuantity {
			return BackorderLimitExceeded(s.VariantID, deficit, s.MaxBackorderQuantity)
		}
	}
	return nil
}

// Release libera quantity de la reserva; actualiza o elimina el seguimiento de orderID.
// Una orden con reserva propia no puede liberar más de lo que tiene reservado.
func (s *StockItem) Release(quantity int, orderID string) error {
	if limit := s.releasable(orderID); quantity <= 0 || quantity > limit {
		return domain.Validation(ErrInvalidRelease.Code,
			fmt.Sprintf("no se pueden liberar %d unidades de %d reservadas", quantity, limit))
	}
	s.QuantityReserved -= quantity
	s.decreaseReservation(orderID, quantity)
	s.trimBackorders(orderID)
	s.touch()
	s.record(quantity, OriginatorOrder, ActionReleased, "", orderID)
	s.addReleased(orderID, quantity)
	return nil
}

// ConfirmShipment baja on-hand y reservado a la vez: es la única salida física
// provocada por una orden.
func (s *StockItem) ConfirmShipment(quantity int, shipmentID, orderID string) error {
	if limit := s.releasable(orderID); quantity <= 0 || quantity > limit {
		return domain.Validation(ErrInvalidShipment.Code,
			fmt.Sprintf("no se pueden enviar %d unidades de %d reservadas", quantity, limit))
	}
	if quantity > s.QuantityOnHand {
		return InsufficientStock(s.VariantID, s.QuantityOnHand, quantity)
	}
	s.QuantityOnHand -= quantity
	s.QuantityReserved -= quantity
	s.decreaseReservation(orderID, quantity)
	s.trimBackorders(orderID)
	s.touch()
	s.record(-quantity, OriginatorShipment, ActionSold, "", shipmentID)
	s.AddEvent(&StockShippedEvent{
		BaseEvent:       domain.NewBaseEvent(EventTypeStockShipped, AggregateTypeStockItem, s.ID),
		StockItemID:     s.ID,
		VariantID:       s.VariantID,
		StockLocationID: s.StockLocationID,
		OrderID:         orderID,
		ShipmentID:      shipmentID,
		Quantity:        quantity,
	})
	return nil
}

// ValidateInvariants revisa el estado tras restaurarlo desde almacenamiento.
// Devuelve todas las violaciones encontradas.
func (s *StockItem) ValidateInvariants() error {
	var errs error
	violation := func(format string, args ...any) {
		errs = multierr.Append(errs, domain.Failure(ErrInvariantViolated.Code, fmt.Sprintf(format, args...)))
	}
	if s.QuantityOnHand < 0 {
		violation("on-hand negativo: %d", s.QuantityOnHand)
	}
	if s.QuantityReserved < 0 {
		violation("reservado negativo: %d", s.QuantityReserved)
	}
	if !s.Backorderable && s.QuantityReserved > s.QuantityOnHand {
		violation("reservado (%d) supera on-hand (%d) sin backorder", s.QuantityReserved, s.QuantityOnHand)
	}
	if s.Backorderable && s.MaxBackorderQuantity != UnlimitedBackorder {
		if s.MaxBackorderQuantity < 0 {
			violation("límite de backorder inválido: %d", s.MaxBackorderQuantity)
		} else if d := s.BackorderQuantity(); d > s.MaxBackorderQuantity {
			violation("backorder (%d) supera el límite (%d)", d, s.MaxBackorderQuantity)
		}
	}
	tracked := 0
	for _, r := range s.Reservations {
		if r.Quantity <= 0 {
			violation("reserva no positiva para orden %s", r.OrderID)
		}
		tracked += r.Quantity
	}
	if tracked > s.QuantityReserved {
		violation("reservas por orden (%d) superan el reservado total (%d)", tracked, s.QuantityReserved)
	}
	return errs
}

// AddBackorderedUnit registra una unidad de orden esperando stock en esta ubicación.
func (s *StockItem) AddBackorderedUnit(orderID, lineItemID string, quantity int) (*InventoryUnit, error) {
	if quantity <= 0 {
		return nil, InvalidQuantity(s.VariantID, quantity)
	}
	u := NewBackorderedUnit(s.ID, orderID, lineItemID, quantity)
	s.BackorderedUnits = append(s.BackorderedUnits, u)
	return u, nil
}

// RequestDeletion solo emite el evento; el registro nunca se borra físicamente.
func (s *StockItem) RequestDeletion() {
	now := time.Now().UTC()
	s.DeletedAt = &now
	s.AddEvent(&StockItemDeletedEvent{
		BaseEvent:       domain.NewBaseEvent(EventTypeStockItemDeleted, AggregateTypeStockItem, s.ID),
		StockItemID:     s.ID,
		VariantID:       s.VariantID,
		StockLocationID: s.StockLocationID,
	})
}

// PullMovements devuelve y limpia los movimientos pendientes de persistir.
func (s *StockItem) PullMovements() []StockMovement {
	out := s.Movements
	s.Movements = nil
	return out
}

// Clone copia profunda sin eventos pendientes (usado por almacenes en memoria).
func (s *StockItem) Clone() *StockItem {
	c := *s
	c.EventRecorder = domain.EventRecorder{}
	c.Reservations = append([]StockReservation(nil), s.Reservations...)
	c.Movements = append([]StockMovement(nil), s.Movements...)
	c.BackorderedUnits = make([]*InventoryUnit, 0, len(s.BackorderedUnits))
	for _, u := range s.BackorderedUnits {
		cu := *u
		c.BackorderedUnits = append(c.BackorderedUnits, &cu)
	}
	if s.DeletedAt != nil {
		d := *s.DeletedAt
		c.DeletedAt = &d
	}
	return &c
}

// processBackorders llena unidades pendientes, de la más antigua a la más reciente,
// hasta agotar la cantidad recién ingresada.
func (s *StockItem) processBackorders(quantity int) {
	pending := make([]*InventoryUnit, 0, len(s.BackorderedUnits))
	for _, u := range s.BackorderedUnits {
		if u.Backordered() {
			pending = append(pending, u)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	remaining := quantity
	now := time.Now().UTC()
	for _, u := range pending {
		if u.Quantity > remaining {
			break
		}
		u.fill(now)
		remaining -= u.Quantity
		s.AddEvent(&BackorderProcessedEvent{
			BaseEvent:       domain.NewBaseEvent(EventTypeBackorderProcessed, AggregateTypeStockItem, s.ID),
			StockItemID:     s.ID,
			InventoryUnitID: u.ID,
			OrderID:         u.OrderID,
			LineItemID:      u.LineItemID,
			Quantity:        u.Quantity,
		})
	}
}

// releasable cantidad que orderID puede liberar o despachar: su propia reserva si
// la tiene, si no la parte del reservado que no pertenece a ninguna orden.
func (s *StockItem) releasable(orderID string) int {
	if orderID != "" {
		if q, ok := s.ReservedFor(orderID); ok {
			return q
		}
	}
	tracked := 0
	for _, r := range s.Reservations {
		tracked += r.Quantity
	}
	if free := s.QuantityReserved - tracked; free > 0 {
		return free
	}
	return 0
}

// trimBackorders cancela, desde la más reciente, las unidades pendientes de orderID
// que ya no tienen respaldo: lo pendiente no supera ni la reserva de la orden ni el
// déficit del item.
func (s *StockItem) trimBackorders(orderID string) {
	if orderID == "" {
		return
	}
	reserved, _ := s.ReservedFor(orderID)
	keep := min(reserved, s.BackorderQuantity())
	pending := 0
	for _, u := range s.BackorderedUnits {
		if u.OrderID == orderID && u.Backordered() {
			pending += u.Quantity
		}
	}
	excess := pending - keep
	for i := len(s.BackorderedUnits) - 1; i >= 0 && excess > 0; i-- {
		u := s.BackorderedUnits[i]
		if u.OrderID != orderID || !u.Backordered() {
			continue
		}
		if u.Quantity <= excess {
			excess -= u.Quantity
			u.cancel()
			continue
		}
		u.Quantity -= excess
		excess = 0
	}
}

func (s *StockItem) setReservation(orderID string, quantity int) {
	for i := range s.Reservations {
		if s.Reservations[i].OrderID == orderID {
			s.Reservations[i].Quantity = quantity
			return
		}
	}
	s.Reservations = append(s.Reservations, StockReservation{OrderID: orderID, Quantity: quantity})
}

func (s *StockItem) decreaseReservation(orderID string, quantity int) {
	if orderID == "" {
		return
	}
	for i := range s.Reservations {
		if s.Reservations[i].OrderID != orderID {
			continue
		}
		left := s.Reservations[i].Quantity - quantity
		if left <= 0 {
			s.Reservations = append(s.Reservations[:i], s.Reservations[i+1:]...)
		} else {
			s.Reservations[i].Quantity = left
		}
		return
	}
}

func (s *StockItem) record(quantity int, originator Originator, action Action, reason, originatorID string) {
	s.Movements = append(s.Movements, newMovement(s.ID, quantity, originator, action, reason, originatorID))
}

func (s *StockItem) touch() {
	s.UpdatedAt = time.Now().UTC()
}

func (s *StockItem) addReserved(orderID string, quantity int) {
	s.AddEvent(&StockReservedEvent{
		BaseEvent:        domain.NewBaseEvent(EventTypeStockReserved, AggregateTypeStockItem, s.ID),
		StockItemID:      s.ID,
		VariantID:        s.VariantID,
		StockLocationID:  s.StockLocationID,
		OrderID:          orderID,
		Quantity:         quantity,
		QuantityReserved: s.QuantityReserved,
	})
}

func (s *StockItem) addReleased(orderID string, quantity int) {
	s.AddEvent(&StockReleasedEvent{
		BaseEvent:        domain.NewBaseEvent(EventTypeStockReleased, AggregateTypeStockItem, s.ID),
		StockItemID:      s.ID,
		VariantID:        s.VariantID,
		StockLocationID:  s.StockLocationID,
		OrderID:          orderID,
		Quantity:         quantity,
		QuantityReserved: s.QuantityReserved,
	})
}
