package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/faisalawaludin/kasir-chain/internal/usecase"
)

// Publisher emits confirmed mutations for other terminals. Messages are
// keyed by order id so one order's events stay ordered within a partition.
type Publisher struct {
	prod         sarama.SyncProducer
	topicOrders  string
	topicTickets string
}

func NewPublisher(prod sarama.SyncProducer, topicOrders, topicTickets string) *Publisher {
	return &Publisher{prod: prod, topicOrders: topicOrders, topicTickets: topicTickets}
}

func (p *Publisher) publish(topic, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	_, _, err = p.prod.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(raw),
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) PublishOrderStatusChanged(_ context.Context, msg usecase.OrderStatusChangedMsg) error {
	return p.publish(p.topicOrders, msg.OrderID, msg)
}

func (p *Publisher) PublishTicketEnqueued(_ context.Context, msg usecase.TicketEnqueuedMsg) error {
	return p.publish(p.topicTickets, msg.OrderID, msg)
}

func (p *Publisher) Close() error {
	return p.prod.Close()
}

var _ usecase.EventPublisher = (*Publisher)(nil)
