package kafka

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront/models"
)

// Producer publishes order events to Kafka. It is best-effort everywhere it
// is used: a publish failure is logged and swallowed, never surfaced to the
// shopper.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a producer for the given brokers, or nil when brokers
// is empty so callers can leave eventing disabled.
func NewProducer(brokers, topic string) *Producer {
	if brokers == "" {
		log.Println("[KafkaProducer] no brokers configured, order events disabled")
		return nil
	}
	w := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Printf("[KafkaProducer] initialized topic=%s brokers=%s", topic, brokers)
	return &Producer{writer: w, topic: topic}
}

// OrderPlacedEvent is published after a successful checkout.
type OrderPlacedEvent struct {
	OrderID  string            `json:"order_id"`
	UserID   string            `json:"user_id"`
	Currency string            `json:"currency"`
	Items    []models.CartItem `json:"items"`
	PlacedAt time.Time         `json:"placed_at"`
}

// PublishOrderPlaced emits an order.placed event keyed by order id.
func (p *Producer) PublishOrderPlaced(ctx context.Context, orderID, userID, currency string, items []models.CartItem) error {
	evt := OrderPlacedEvent{
		OrderID:  orderID,
		UserID:   userID,
		Currency: currency,
		Items:    items,
		PlacedAt: time.Now(),
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("[KafkaProducer] failed to publish order.placed order=%s err=%v", evt.OrderID, err)
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	log.Printf("[KafkaProducer] closing writer topic=%s", p.topic)
	return p.writer.Close()
}
