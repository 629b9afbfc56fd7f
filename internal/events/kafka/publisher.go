// Package kafka publishes ledger audit events to a Kafka topic. Publishing is
// best-effort from the ledger's point of view; the caller records failures as
// degraded operations instead of failing the entry.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/contazen/erp_ledger_core/internal/core/domain"
	portssvc "github.com/contazen/erp_ledger_core/internal/core/ports/services"
)

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Kafka-backed audit publisher. Messages are keyed by
// company so one company's audit trail stays ordered within a partition.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// Ensure Publisher implements portssvc.AuditPublisher
var _ portssvc.AuditPublisher = (*Publisher)(nil)

// Publish sends one audit event.
func (p *Publisher) Publish(ctx context.Context, event domain.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event for entry %s: %w", event.EntryID, err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CompanyID),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
