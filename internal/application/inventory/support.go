package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/internal/domain/inventory"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

// eventSink publica eventos después del commit. Un fallo se registra y no se propaga:
// el cambio de stock ya quedó confirmado.
type eventSink struct {
	pub ports.EventPublisher
	log *logger.Logger
}

func newEventSink(pub ports.EventPublisher, log *logger.Logger) eventSink {
	if log == nil {
		log = logger.Nop()
	}
	return eventSink{pub: pub, log: log}
}

func (s eventSink) publish(ctx context.Context, events []domain.Event) {
	if s.pub == nil || len(events) == 0 {
		return
	}
	if err := s.pub.Publish(ctx, events...); err != nil {
		s.log.Error().Err(err).Int("events", len(events)).Msg("publicar eventos de dominio")
	}
}

// persistItem guarda el item y los movimientos registrados desde que se cargó.
func persistItem(ctx context.Context, r TxRepos, item *inventory.StockItem) error {
	if err := r.Items.Save(ctx, item); err != nil {
		return fmt.Errorf("guardar stock item %s: %w", item.ID, err)
	}
	if movs := item.PullMovements(); len(movs) > 0 {
		if err := r.Movements.CreateBatch(ctx, movs); err != nil {
			return fmt.Errorf("guardar movimientos de %s: %w", item.ID, err)
		}
	}
	return nil
}

// persistTouched guarda los items de la ubicación que registraron movimientos.
func persistTouched(ctx context.Context, r TxRepos, loc *inventory.StockLocation) ([]domain.Event, error) {
	var events []domain.Event
	for _, si := range loc.StockItems {
		if len(si.Movements) == 0 {
			continue
		}
		if err := persistItem(ctx, r, si); err != nil {
			return nil, err
		}
		events = append(events, si.PullEvents()...)
	}
	return events, nil
}
