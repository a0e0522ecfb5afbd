package messaging

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"sorteios_api/internal/domain/entities"
	"sorteios_api/internal/usecase/interfaces"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultPaymentStatusQueue = "payment.status_changed"

// RabbitMQPaymentEventPublisher publishes persistent messages to a durable queue
// on the default exchange.
type RabbitMQPaymentEventPublisher struct {
	conn  *amqp.Connection
	queue string

	mu sync.Mutex
	ch *amqp.Channel
}

var _ interfaces.IPaymentEventPublisher = (*RabbitMQPaymentEventPublisher)(nil)

func NewRabbitMQPaymentEventPublisher(url, queue string) (*RabbitMQPaymentEventPublisher, error) {
	if queue == "" {
		queue = DefaultPaymentStatusQueue
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("[messaging][rabbitmq] dial failed err=%v", err)
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Printf("[messaging][rabbitmq] channel open failed err=%v", err)
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		log.Printf("[messaging][rabbitmq] queue declare failed queue=%s err=%v", queue, err)
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	log.Printf("[messaging][rabbitmq] publisher initialized queue=%s", queue)
	return &RabbitMQPaymentEventPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *RabbitMQPaymentEventPublisher) PublishStatusChanged(ctx context.Context, event entities.PaymentStatusChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	log.Printf("[messaging][rabbitmq] publish queue=%s payment_id=%s event_id=%s status=%s", p.queue, event.PaymentID, event.EventID, event.Status)
	return p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    time.Now().UTC(),
			Type:         "payment_status_changed",
			Body:         body,
		},
	)
}

func (p *RabbitMQPaymentEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	return p.conn.Close()
}
