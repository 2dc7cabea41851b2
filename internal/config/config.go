package config

import (
	"os"
	"strings"
	"time"

	appErr "github.com/samims/pipenotify/internal/errors"
)

const (
	SinkSNS   = "sns"
	SinkKafka = "kafka"
)

// RelayConfig holds the approval relay settings.
type RelayConfig struct {
	// TopicARN is optional; publishing is skipped when it is empty.
	TopicARN  string
	Sink      string
	AWSRegion string
}

// ForwarderConfig holds the webhook forwarder settings.
type ForwarderConfig struct {
	WebhookURL string
}

// KafkaConfig holds broker settings for the kafka sink and the local consumer.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
	ClientID      string
}

// ServerConfig holds the local dispatcher HTTP settings.
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// LoadRelayConfig loads relay configuration from environment
func LoadRelayConfig() RelayConfig {
	sink := strings.ToLower(getEnv("NOTIFY_SINK", SinkSNS))
	if sink != SinkKafka {
		sink = SinkSNS
	}
	return RelayConfig{
		TopicARN:  strings.TrimSpace(os.Getenv("SNS_TOPIC_ARN")),
		Sink:      sink,
		AWSRegion: os.Getenv("AWS_REGION"),
	}
}

// LoadForwarderConfig loads the forwarder configuration.
// The webhook URL is mandatory.
func LoadForwarderConfig() (ForwarderConfig, error) {
	url := strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL"))
	if url == "" {
		return ForwarderConfig{}, appErr.Wrap(appErr.ErrMissingConfig, "SLACK_WEBHOOK_URL not set")
	}
	return ForwarderConfig{WebhookURL: url}, nil
}

// LoadKafkaConfig loads kafka settings; brokers and topic are required.
func LoadKafkaConfig() (KafkaConfig, error) {
	brokers := splitList(os.Getenv("KAFKA_BROKERS"))
	topic := strings.TrimSpace(os.Getenv("KAFKA_NOTIF_TOPIC"))
	if len(brokers) == 0 || topic == "" {
		return KafkaConfig{}, appErr.Wrap(appErr.ErrMissingConfig, "KAFKA_BROKERS or KAFKA_NOTIF_TOPIC not set")
	}
	return KafkaConfig{
		Brokers:       brokers,
		Topic:         topic,
		ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "pipenotify-forwarder"),
		ClientID:      getEnv("KAFKA_CLIENT_ID", "pipenotify"),
	}, nil
}

// LoadServerConfig loads the local dispatcher settings.
func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
