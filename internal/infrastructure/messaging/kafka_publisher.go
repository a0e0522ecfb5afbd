package messaging

import (
	"context"
	"encoding/json"
	"log"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
)

const DefaultPaymentStatusTopic = "payment.status_changed"

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPaymentEventPublisher streams status changes keyed by payment id, so all
// events of a payment land on the same partition in order.
type KafkaPaymentEventPublisher struct {
	writer messageWriter
	topic  string
}

var _ interfaces.IPaymentEventPublisher = (*KafkaPaymentEventPublisher)(nil)

func NewKafkaPaymentEventPublisher(brokers []string, topic string) *KafkaPaymentEventPublisher {
	if topic == "" {
		topic = DefaultPaymentStatusTopic
	}
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: brokers,
		Topic:   topic,
	})
	log.Printf("[messaging][kafka] producer initialized brokers=%v topic=%s", brokers, topic)
	return &KafkaPaymentEventPublisher{writer: writer, topic: topic}
}

func (p *KafkaPaymentEventPublisher) PublishStatusChanged(ctx context.Context, event entities.PaymentStatusChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	log.Printf("[messaging][kafka] publish topic=%s payment_id=%s event_id=%s status=%s", p.topic, event.PaymentID, event.EventID, event.Status)
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.PaymentID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("payment_status_changed")},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	})
}

func (p *KafkaPaymentEventPublisher) Close() error {
	return p.writer.Close()
}
