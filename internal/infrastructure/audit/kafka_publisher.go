package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/graphgate/graphgate/internal/config"
	"github.com/graphgate/graphgate/pkg/logger"
)

// KafkaPublisher writes audit events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

// NewKafkaPublisher builds a Kafka-backed publisher.
func NewKafkaPublisher(cfg config.AuditConfig, log logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaPublisher{
		writer: writer,
		logger: log.WithComponent("AuditPublisher"),
	}
}

// Publish sends one event, keyed by principal so per-principal ordering is
// preserved within a partition. Delivery failures are logged and dropped.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error(ctx, "failed to encode audit event", err)
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.Principal),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "failed to publish audit event", err,
			logger.Fields{"action": event.Action})
	}
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
