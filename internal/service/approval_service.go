package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samims/pipenotify/internal/metrics"
	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/internal/notify"
	"github.com/samims/pipenotify/internal/pipeline"
	"github.com/samims/pipenotify/pkg/tracing"
)

const approvalKeyword = "approval"

// ApprovalService relays pipeline approval gates to a notification topic.
type ApprovalService interface {
	// Process handles one state-change event and publishes at most one notification.
	Process(ctx context.Context, event model.PipelineEvent) (model.Response, error)
}

type approvalService struct {
	orchestrator pipeline.Orchestrator
	publisher    notify.Publisher
	topic        string
	now          func() time.Time
	logger       *slog.Logger
	tracer       *tracing.Tracer
}

// NewApprovalService creates the relay. An empty topic disables publishing.
func NewApprovalService(
	orchestrator pipeline.Orchestrator,
	publisher notify.Publisher,
	topic string,
	logger *slog.Logger,
) ApprovalService {
	return &approvalService{
		orchestrator: orchestrator,
		publisher:    publisher,
		topic:        topic,
		now:          time.Now,
		logger:       logger.With("layer", "service", "component", "approvalService"),
		tracer:       tracing.Named("approval-relay"),
	}
}

func (s *approvalService) Process(ctx context.Context, event model.PipelineEvent) (model.Response, error) {
	if err := event.Validate(); err != nil {
		s.logger.Error("Rejected pipeline event", slog.Any("error", err))
		return model.Response{}, err
	}
	d := event.Detail

	ctx, span := s.tracer.StartServerSpan(ctx, "ProcessApprovalEvent",
		attribute.String(tracing.AttrPipelineName, d.Pipeline),
		attribute.String(tracing.AttrPipelineExecutionID, d.ExecutionID),
	)
	defer span.End()

	log := s.logger.With(
		slog.String("pipeline", d.Pipeline),
		slog.String("execution_id", d.ExecutionID),
		slog.String("state", d.State),
	)

	exec, err := s.orchestrator.GetPipelineExecution(ctx, d.Pipeline, d.ExecutionID)
	if err != nil {
		return s.fail(span, log, err)
	}
	log.Debug("Pipeline execution fetched", slog.String("execution_status", exec.Status))

	stages, err := s.orchestrator.GetPipelineState(ctx, d.Pipeline)
	if err != nil {
		return s.fail(span, log, err)
	}

	stage, ok := model.FirstInProgress(stages)
	if !ok {
		log.Info("No stage in progress, nothing to notify")
		metrics.ApprovalEvents.WithLabelValues(metrics.OutcomeNoStage).Inc()
		return model.OK(model.RelayResponseBody), nil
	}
	span.SetAttributes(attribute.String(tracing.AttrPipelineStage, stage.StageName))

	if !IsApprovalStage(stage.StageName) {
		log.Info("Stage in progress is not an approval gate", slog.String("stage", stage.StageName))
		metrics.ApprovalEvents.WithLabelValues(metrics.OutcomeNotApproval).Inc()
		return model.OK(model.RelayResponseBody), nil
	}

	if s.topic == "" {
		log.Info("Approval gate reached but no topic configured, skipping publish", slog.String("stage", stage.StageName))
		metrics.ApprovalEvents.WithLabelValues(metrics.OutcomeNoTopic).Inc()
		return model.OK(model.RelayResponseBody), nil
	}

	message := ApprovalMessage(d, stage.StageName, s.now())
	if err := s.publisher.Publish(ctx, s.topic, message, ApprovalSubject(d.Pipeline)); err != nil {
		return s.fail(span, log, err)
	}

	log.Info("Approval notification sent", slog.String("stage", stage.StageName))
	metrics.ApprovalEvents.WithLabelValues(metrics.OutcomePublished).Inc()
	return model.OK(model.RelayResponseBody), nil
}

func (s *approvalService) fail(span trace.Span, log *slog.Logger, err error) (model.Response, error) {
	s.tracer.RecordError(span, err)
	log.Error("Error processing approval notification", slog.Any("error", err))
	metrics.ApprovalEvents.WithLabelValues(metrics.OutcomeError).Inc()
	return model.Response{}, err
}

// IsApprovalStage reports whether a stage name marks a manual approval gate.
// Any stage whose name contains "approval", in any case, qualifies.
func IsApprovalStage(stageName string) bool {
	return strings.Contains(strings.ToLower(stageName), approvalKeyword)
}
