package events

import (
	"context"
	"encoding/json"
	"time"

	"bookit/pkg/logger"
	"bookit/pkg/model"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingUpdated   = "booking.updated"
	TypeBookingCancelled = "booking.cancelled"
)

// Envelope is the wire shape of a booking lifecycle event.
type Envelope struct {
	EventID    string         `json:"event_id"`
	EventType  string         `json:"event_type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Booking    *model.Booking `json:"booking"`
}

// Publisher emits booking lifecycle events. Publishing is best-effort:
// failures are logged by callers, never surfaced to the booking flow.
type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // key by booking id for per-booking ordering
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}

	log.Info("Kafka booking event publisher initialized", "topic", topic)
	return &kafkaPublisher{
		writer: writer,
		log:    log,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	envelope := Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Booking:    booking,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(booking.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(envelope.EventID)},
			{Key: "event-type", Value: []byte(eventType)},
		},
	})
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, *model.Booking) error { return nil }

func (NoopPublisher) Close() error { return nil }
