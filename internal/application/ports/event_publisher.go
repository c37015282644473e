package ports

import (
	"context"

	"github.com/jhoicas/fulfillment-api/internal/domain"
)

// EventPublisher define el puerto de salida para despachar eventos de dominio.
// Los casos de uso publican después del commit; un adaptador (log, Kafka, mock)
// decide el destino. El núcleo solo encola eventos en los agregados.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}
