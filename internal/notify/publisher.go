package notify

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	appErr "github.com/samims/pipenotify/internal/errors"
	"github.com/samims/pipenotify/pkg/tracing"
)

// Publisher sends a message with a subject to a notification topic.
type Publisher interface {
	Publish(ctx context.Context, topic, message, subject string) error
}

// SNSAPI is the subset of the SNS SDK client in use.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type snsPublisher struct {
	api    SNSAPI
	log    *slog.Logger
	tracer *tracing.Tracer
}

// NewSNSPublisher publishes to SNS topics identified by ARN.
func NewSNSPublisher(api SNSAPI, logger *slog.Logger) Publisher {
	return &snsPublisher{
		api:    api,
		log:    logger.With("layer", "notify", "component", "snsPublisher"),
		tracer: tracing.Named("sns-publisher"),
	}
}

func (p *snsPublisher) Publish(ctx context.Context, topic, message, subject string) error {
	ctx, span := p.tracer.StartClientSpan(ctx, "SNSPublish")
	defer span.End()
	p.tracer.AddMessagingAttributes(span, "sns", topic, "publish")

	out, err := p.api.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(topic),
		Message:  aws.String(message),
		Subject:  aws.String(subject),
	})
	if err != nil {
		p.tracer.RecordError(span, err)
		return appErr.WrapCause(appErr.ErrPublish, err, "sns publish to %s", topic)
	}

	p.log.Info("Message published",
		slog.String("topic", topic),
		slog.String("message_id", aws.ToString(out.MessageId)))
	return nil
}
