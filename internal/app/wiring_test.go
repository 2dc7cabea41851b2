package app

import (
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samims/pipenotify/internal/config"
	appErr "github.com/samims/pipenotify/internal/errors"
)

func TestNewPublisherSNS(t *testing.T) {
	cfg := config.RelayConfig{Sink: config.SinkSNS, TopicARN: "arn:aws:sns:us-east-1:123456789012:approvals"}

	pub, topic, closeFn, err := newPublisher(cfg, aws.Config{Region: "us-east-1"}, slog.Default())
	require.NoError(t, err)
	assert.NotNil(t, pub)
	assert.Equal(t, cfg.TopicARN, topic)
	assert.NoError(t, closeFn())
}

func TestNewPublisherSNSWithoutTopic(t *testing.T) {
	_, topic, _, err := newPublisher(config.RelayConfig{Sink: config.SinkSNS}, aws.Config{}, slog.Default())
	require.NoError(t, err)
	assert.Empty(t, topic)
}

func TestNewPublisherKafkaRequiresBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_NOTIF_TOPIC", "")

	_, _, _, err := newPublisher(config.RelayConfig{Sink: config.SinkKafka}, aws.Config{}, slog.Default())
	require.Error(t, err)
	assert.True(t, appErr.IsMissingConfig(err))
}
