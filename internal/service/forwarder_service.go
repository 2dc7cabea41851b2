package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	appErr "github.com/samims/pipenotify/internal/errors"
	"github.com/samims/pipenotify/internal/metrics"
	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/internal/slack"
	"github.com/samims/pipenotify/pkg/tracing"
)

// ForwardResult tallies one batch. It is for logs and metrics only.
type ForwardResult struct {
	Attempted int
	Sent      int
	Failed    int
	Invalid   int
}

// ForwarderService posts notification records to a chat webhook.
type ForwarderService interface {
	// Forward sends records in order. A failed record never stops the batch
	// and never turns into an error for the caller.
	Forward(ctx context.Context, webhookURL string, records []model.Delivery) (model.Response, ForwardResult)
}

type forwarderService struct {
	poster slack.Poster
	logger *slog.Logger
	tracer *tracing.Tracer
}

func NewForwarderService(poster slack.Poster, logger *slog.Logger) ForwarderService {
	return &forwarderService{
		poster: poster,
		logger: logger.With("layer", "service", "component", "forwarderService"),
		tracer: tracing.Named("webhook-forwarder"),
	}
}

func (s *forwarderService) Forward(ctx context.Context, webhookURL string, records []model.Delivery) (model.Response, ForwardResult) {
	ctx, span := s.tracer.StartServerSpan(ctx, "ForwardBatch",
		attribute.Int("batch.size", len(records)),
	)
	defer span.End()

	var res ForwardResult
	for i, rec := range records {
		if rec.Message == "" {
			res.Invalid++
			metrics.WebhookDeliveries.WithLabelValues(metrics.ResultInvalid).Inc()
			s.logger.Error("Slack notification failed",
				slog.Int("record", i),
				slog.Any("error", appErr.ErrMissingMessage))
			continue
		}

		res.Attempted++
		if err := s.send(ctx, webhookURL, rec); err != nil {
			res.Failed++
			s.logger.Error("Slack notification failed",
				slog.Int("record", i),
				slog.String("subject", rec.SubjectOrDefault()),
				slog.Any("error", err))
			continue
		}
		res.Sent++
	}

	span.SetAttributes(
		attribute.Int("batch.sent", res.Sent),
		attribute.Int("batch.failed", res.Failed+res.Invalid),
	)
	s.logger.Info("Batch forwarded",
		slog.Int("records", len(records)),
		slog.Int("sent", res.Sent),
		slog.Int("failed", res.Failed),
		slog.Int("invalid", res.Invalid))
	return model.OK(model.ForwarderResponseBody), res
}

func (s *forwarderService) send(ctx context.Context, webhookURL string, rec model.Delivery) error {
	start := time.Now()
	err := s.poster.Post(ctx, webhookURL, model.NewChatPayload(rec.SubjectOrDefault(), rec.Message))
	result := metrics.ResultSent
	if err != nil {
		result = metrics.ResultFailed
	}
	metrics.WebhookDeliveries.WithLabelValues(result).Inc()
	metrics.WebhookDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	return err
}
