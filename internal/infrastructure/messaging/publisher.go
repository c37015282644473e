package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/multierr"

	"github.com/jhoicas/fulfillment-api/internal/application/ports"
	"github.com/jhoicas/fulfillment-api/internal/domain"
	"github.com/jhoicas/fulfillment-api/pkg/config"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
)

var (
	_ ports.EventPublisher = (*LogPublisher)(nil)
	_ ports.EventPublisher = (*KafkaPublisher)(nil)
	_ ports.EventPublisher = NopPublisher{}
)

// Envelope forma en que un evento sale del proceso.
type Envelope struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope serializa el evento completo en Payload.
func NewEnvelope(e domain.Event) (Envelope, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, fmt.Errorf("serializar evento %s: %w", e.EventType(), err)
	}
	return Envelope{
		ID:            e.EventID(),
		Type:          e.EventType(),
		AggregateType: e.AggregateType(),
		AggregateID:   e.AggregateID(),
		OccurredAt:    e.OccurredAt(),
		Payload:       payload,
	}, nil
}

// NopPublisher descarta los eventos.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...domain.Event) error { return nil }

// LogPublisher escribe cada evento como una línea de log estructurada.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher crea el publicador sobre el logger de la app.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log.Component("events")}
}

func (p *LogPublisher) Publish(_ context.Context, events ...domain.Event) error {
	for _, e := range events {
		env, err := NewEnvelope(e)
		if err != nil {
			return err
		}
		p.log.Info().
			Str("event_id", env.ID).
			Str("event_type", env.Type).
			Str("aggregate_type", env.AggregateType).
			Str("aggregate_id", env.AggregateID).
			RawJSON("payload", env.Payload).
			Msg("evento de dominio")
	}
	return nil
}

// MessageWriter lo que KafkaPublisher necesita de *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica eventos en un tópico. La clave es el id del agregado,
// así los eventos de un mismo StockItem o traslado conservan su orden por partición.
type KafkaPublisher struct {
	writer MessageWriter
	log    *logger.Logger
}

// NewKafkaWriter crea el writer síncrono para los brokers y tópico configurados.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher crea el publicador sobre un writer.
func NewKafkaPublisher(w MessageWriter, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, log: log.Component("kafka")}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	var errs error
	for _, e := range events {
		env, err := NewEnvelope(e)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		value, err := json.Marshal(env)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("serializar sobre %s: %w", env.Type, err))
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(env.AggregateID),
			Value: value,
			Time:  env.OccurredAt,
			Headers: []kafka.Header{
				{Key: "event-type", Value: []byte(env.Type)},
				{Key: "event-id", Value: []byte(env.ID)},
			},
		})
	}
	if len(msgs) > 0 {
		if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("publicar %d eventos: %w", len(msgs), err))
		} else {
			p.log.Debug().Int("events", len(msgs)).Msg("eventos publicados")
		}
	}
	return errs
}

// Close cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
