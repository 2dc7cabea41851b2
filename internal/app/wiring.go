package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/samims/pipenotify/internal/config"
	"github.com/samims/pipenotify/internal/kafka"
	"github.com/samims/pipenotify/internal/notify"
	"github.com/samims/pipenotify/internal/pipeline"
	"github.com/samims/pipenotify/internal/service"
)

// Relay bundles the approval service with the cleanup of its sink.
type Relay struct {
	Service service.ApprovalService
	Close   func() error
}

// LoadAWSConfig resolves credentials and region from the default chain.
func LoadAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}

// NewRelay builds the approval relay with the sink selected by NOTIFY_SINK.
func NewRelay(ctx context.Context, l *slog.Logger) (*Relay, error) {
	cfg := config.LoadRelayConfig()

	awsCfg, err := LoadAWSConfig(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	orch := pipeline.NewCodePipelineClient(codepipeline.NewFromConfig(awsCfg), l)

	publisher, topic, closeFn, err := newPublisher(cfg, awsCfg, l)
	if err != nil {
		return nil, err
	}
	l.Info("Approval relay configured",
		slog.String("sink", cfg.Sink),
		slog.Bool("publishing_enabled", topic != ""))

	return &Relay{
		Service: service.NewApprovalService(orch, publisher, topic, l),
		Close:   closeFn,
	}, nil
}

func newPublisher(cfg config.RelayConfig, awsCfg aws.Config, l *slog.Logger) (notify.Publisher, string, func() error, error) {
	if cfg.Sink != config.SinkKafka {
		return notify.NewSNSPublisher(sns.NewFromConfig(awsCfg), l), cfg.TopicARN, func() error { return nil }, nil
	}

	kcfg, err := config.LoadKafkaConfig()
	if err != nil {
		return nil, "", nil, err
	}
	sp, err := sarama.NewSyncProducer(kcfg.Brokers, kafka.NewSaramaConfig(kcfg.ClientID+"-producer"))
	if err != nil {
		return nil, "", nil, fmt.Errorf("create kafka producer: %w", err)
	}
	producer := kafka.NewProducer(sp, l)
	return producer, kcfg.Topic, producer.Close, nil
}
