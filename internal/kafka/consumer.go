package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/internal/service"
	"github.com/samims/pipenotify/pkg/tracing"
)

// Consumer reads notifications from a topic and forwards each one to the chat webhook.
type Consumer struct {
	topic         string
	webhookURL    string
	forwarder     service.ForwarderService
	consumerGroup sarama.ConsumerGroup
	log           *slog.Logger
	tracer        *tracing.Tracer
}

// NewKafkaConsumer constructs a new Kafka Consumer.
// It receives its consumer group via dependency injection.
func NewKafkaConsumer(
	topic string,
	webhookURL string,
	consumerGroup sarama.ConsumerGroup,
	forwarder service.ForwarderService,
	log *slog.Logger,
) *Consumer {
	return &Consumer{
		topic:         topic,
		webhookURL:    webhookURL,
		consumerGroup: consumerGroup,
		forwarder:     forwarder,
		log:           log.With("layer", "kafka", "component", "consumer"),
		tracer:        tracing.Named("kafka-consumer"),
	}
}

// Start runs the consume loop until ctx is cancelled or the group is closed.
func (c *Consumer) Start(ctx context.Context) error {
	defer func() {
		if err := c.consumerGroup.Close(); err != nil {
			c.log.Warn("Failed to close consumer group", slog.Any("error", err))
		}
	}()

	c.log.Info("Kafka consumer started", slog.String("topic", c.topic))

	backoff := 1 * time.Second
	for {
		err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
		if err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return err
			}
			c.log.Error("Error consuming messages", slog.Any("error", err))

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}

		if ctx.Err() != nil {
			c.log.Info("Context cancelled, stopping consumer")
			return ctx.Err()
		}
		backoff = 1 * time.Second
	}
}

// Setup logs the partitions assigned to this session.
func (c *Consumer) Setup(session sarama.ConsumerGroupSession) error {
	for topic, partitions := range session.Claims() {
		c.log.Info("Partition assignment",
			slog.String("topic", topic),
			slog.Any("partitions", partitions),
		)
	}
	return nil
}

// Cleanup is called once when the consumer session ends.
func (c *Consumer) Cleanup(_ sarama.ConsumerGroupSession) error {
	c.log.Info("Kafka session cleanup complete")
	return nil
}

// ConsumeClaim forwards every message of the claim. Offsets are marked whatever
// the delivery outcome; a failed chat post is logged by the forwarder and not retried.
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		c.handle(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (c *Consumer) handle(ctx context.Context, message *sarama.ConsumerMessage) {
	headers := make([]sarama.RecordHeader, 0, len(message.Headers))
	for _, h := range message.Headers {
		if h != nil {
			headers = append(headers, *h)
		}
	}
	ctx = tracing.ExtractTraceContext(ctx, headers)
	ctx, span := c.tracer.StartServerSpan(ctx, "KafkaConsume")
	defer span.End()
	c.tracer.AddKafkaAttributes(span, message.Topic, "receive", message.Partition, message.Offset)

	var notif model.Notification
	if err := json.Unmarshal(message.Value, &notif); err != nil {
		c.log.Error("Failed to decode message",
			slog.Int64("offset", message.Offset),
			slog.Any("error", err))
		c.tracer.RecordError(span, err)
		return
	}

	_, result := c.forwarder.Forward(ctx, c.webhookURL, []model.Delivery{{
		Subject: notif.Subject,
		Message: notif.Message,
	}})
	c.log.Debug("Message forwarded",
		slog.String("topic", message.Topic),
		slog.Int64("offset", message.Offset),
		slog.Int("sent", result.Sent))
}
