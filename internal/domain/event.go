package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event es un hecho ocurrido en el dominio. El núcleo solo los encola;
// el despacho lo hace la capa de aplicación después del commit.
type Event interface {
	EventID() string
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
	AggregateType() string
}

// BaseEvent campos comunes de todos los eventos de dominio.
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"occurred_at"`
	AggID     string    `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// NewBaseEvent construye la cabecera de un evento.
func NewBaseEvent(eventType, aggType, aggID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		AggID:     aggID,
		AggType:   aggType,
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) AggregateID() string   { return e.AggID }
func (e BaseEvent) AggregateType() string { return e.AggType }

// EventRecorder se embebe en los agregados para acumular eventos pendientes.
type EventRecorder struct {
	events []Event
}

// AddEvent encola un evento.
func (r *EventRecorder) AddEvent(e Event) {
	r.events = append(r.events, e)
}

// Events devuelve los eventos pendientes en orden de emisión.
func (r *EventRecorder) Events() []Event {
	return r.events
}

// ClearEvents descarta los eventos pendientes.
func (r *EventRecorder) ClearEvents() {
	r.events = nil
}

// PullEvents devuelve y limpia los eventos pendientes.
func (r *EventRecorder) PullEvents() []Event {
	out := r.events
	r.events = nil
	return out
}
