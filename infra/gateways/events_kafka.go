package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	protocols "github.com/giovaniif/items-api/protocols"
)

type EventPublisherKafka struct {
	writer *kafka.Writer
}

func NewEventPublisherKafka(brokers []string, topic string) *EventPublisherKafka {
	return &EventPublisherKafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *EventPublisherKafka) Publish(ctx context.Context, event protocols.ItemEvent) error {
	msg, err := newItemMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", event.Type, err)
	}
	return nil
}

func (p *EventPublisherKafka) Close() error {
	return p.writer.Close()
}

// Messages are keyed by item id so every event of one item lands on the same partition.
func newItemMessage(event protocols.ItemEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.Item.Id, 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}
