// Package kafka publishes committed ledger records to a Kafka topic with
// segmentio/kafka-go.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cargo/internal/core/ports"

	kafkago "github.com/segmentio/kafka-go"
)

const EventTypeStatusRecorded = "order.status.recorded"

// MessageWriter is the part of *kafkago.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// LedgerMessage is the JSON value of every published message.
type LedgerMessage struct {
	Seq        uint64    `json:"seq"`
	EntryID    string    `json:"entryId"`
	OrderID    string    `json:"orderId"`
	ActorID    string    `json:"actorId,omitempty"`
	Status     string    `json:"status"`
	RecordedAt time.Time `json:"recordedAt"`
}

// LedgerPublisher implements ports.LedgerPublisher. Messages are keyed by
// order id, so the hash balancer keeps every order on one partition and
// consumers see its entries in ledger order.
type LedgerPublisher struct {
	writer MessageWriter
}

// NewLedgerPublisher builds a synchronous writer that waits for all in-sync
// replicas to acknowledge each batch.
func NewLedgerPublisher(brokers []string, topic string) *LedgerPublisher {
	return NewLedgerPublisherWithWriter(&kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		BatchTimeout:           20 * time.Millisecond,
		AllowAutoTopicCreation: true,
	})
}

func NewLedgerPublisherWithWriter(writer MessageWriter) *LedgerPublisher {
	return &LedgerPublisher{writer: writer}
}

// Publish writes the batch and returns only after the broker accepted every
// message, or with the first error.
func (p *LedgerPublisher) Publish(ctx context.Context, records []ports.LedgerRecord) error {
	if len(records) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(records))
	for _, r := range records {
		body := LedgerMessage{
			Seq:        r.Seq,
			EntryID:    r.EntryID.String(),
			OrderID:    r.OrderID.String(),
			Status:     r.Status.String(),
			RecordedAt: r.RecordedAt.UTC(),
		}
		if !r.ActorID.IsZero() {
			body.ActorID = r.ActorID.String()
		}

		value, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("kafka: marshal ledger record %d: %w", r.Seq, err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(body.OrderID),
			Value: value,
			Headers: []kafkago.Header{
				{Key: "event-type", Value: []byte(EventTypeStatusRecorded)},
			},
			Time: body.RecordedAt,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka: write %d ledger records: %w", len(msgs), err)
	}
	return nil
}

func (p *LedgerPublisher) Close() error {
	return p.writer.Close()
}
