package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/shopspring/decimal"

	"jewelbox/internal/domain"
)

const OrderCompleted = "order.completed"

// OrderEvent is published once an order has been committed.
type OrderEvent struct {
	Type        string            `json:"type"`
	OrderID     int64             `json:"order_id"`
	UserID      int64             `json:"user_id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	PaymentID   string            `json:"payment_id"`
	Items       []domain.LineItem `json:"items"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

func NewOrderEvent(o domain.Order) OrderEvent {
	return OrderEvent{
		Type:        OrderCompleted,
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		PaymentID:   o.OrderDetails.PaymentID,
		Items:       o.OrderDetails.Items,
		OccurredAt:  time.Now().UTC(),
	}
}

type Publisher interface {
	PublishOrder(ctx context.Context, ev OrderEvent) error
	Close() error
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) PublishOrder(context.Context, OrderEvent) error { return nil }
func (Nop) Close() error                                   { return nil }

// Kafka publishes order events through a synchronous sarama producer.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafka(brokers []string, topic string) (*Kafka, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to start sarama producer: %w", err)
	}
	log.Printf("[kafka] producer connected brokers=%v topic=%s", brokers, topic)
	return NewKafkaWithProducer(producer, topic), nil
}

func NewKafkaWithProducer(p sarama.SyncProducer, topic string) *Kafka {
	return &Kafka{producer: p, topic: topic}
}

func (k *Kafka) PublishOrder(_ context.Context, ev OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.OrderID, 10)),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(ev.Type)},
		},
	}
	if _, _, err := k.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("send to %s: %w", k.topic, err)
	}
	return nil
}

func (k *Kafka) Close() error { return k.producer.Close() }
