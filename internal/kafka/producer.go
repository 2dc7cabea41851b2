package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"

	appErr "github.com/samims/pipenotify/internal/errors"
	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/internal/notify"
	"github.com/samims/pipenotify/pkg/tracing"
)

// Producer publishes notifications to a Kafka topic. It satisfies notify.Publisher.
type Producer struct {
	syncProducer sarama.SyncProducer
	log          *slog.Logger
	tracer       *tracing.Tracer
	closeOnce    sync.Once
}

var _ notify.Publisher = (*Producer)(nil)

// NewProducer uses DI to inject the SyncProducer and logger.
func NewProducer(syncProducer sarama.SyncProducer, log *slog.Logger) *Producer {
	if syncProducer == nil || log == nil {
		panic("NewProducer: nil dependencies provided")
	}
	return &Producer{
		syncProducer: syncProducer,
		log:          log.With("layer", "kafka", "component", "producer"),
		tracer:       tracing.Named("kafka-producer"),
	}
}

// NewSaramaConfig returns the producer settings used by the relay.
func NewSaramaConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	return cfg
}

// Publish sends the notification synchronously with trace context in the headers.
func (p *Producer) Publish(ctx context.Context, topic, message, subject string) error {
	ctx, span := p.tracer.StartClientSpan(ctx, "KafkaPublish")
	defer span.End()

	if err := ctx.Err(); err != nil {
		p.tracer.RecordError(span, err)
		return appErr.WrapCause(appErr.ErrPublish, err, "publish to %s", topic)
	}

	data, err := json.Marshal(model.Notification{Subject: subject, Message: message})
	if err != nil {
		p.tracer.RecordError(span, err)
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(subject),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
		Headers:   tracing.InjectTraceContext(ctx, nil),
	}

	partition, offset, err := p.syncProducer.SendMessage(msg)
	if err != nil {
		p.log.Error("Message delivery failed", slog.String("topic", topic), slog.Any("error", err))
		p.tracer.RecordError(span, err)
		return appErr.WrapCause(appErr.ErrPublish, err, "publish to %s", topic)
	}

	p.tracer.AddKafkaAttributes(span, topic, "publish", partition, offset)
	p.log.Info("Message delivered",
		slog.String("topic", topic),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset))
	return nil
}

// Close shuts down the underlying producer once.
func (p *Producer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.log.Info("Closing Kafka producer...")
		err = p.syncProducer.Close()
	})
	return err
}
