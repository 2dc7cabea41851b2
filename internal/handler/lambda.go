package handler

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/samims/pipenotify/internal/config"
	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/internal/service"
)

// ApprovalHandler adapts the approval relay to the Lambda runtime.
type ApprovalHandler struct {
	svc    service.ApprovalService
	logger *slog.Logger
}

func NewApprovalHandler(svc service.ApprovalService, logger *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{svc: svc, logger: logger}
}

// Handle processes one pipeline state-change event. Errors are returned so the
// dispatcher marks the invocation failed.
func (h *ApprovalHandler) Handle(ctx context.Context, event model.PipelineEvent) (model.Response, error) {
	h.logger.Info("Pipeline event received",
		slog.String("request_id", requestID(ctx)),
		slog.String("pipeline", event.Detail.Pipeline),
		slog.String("state", event.Detail.State))
	return h.svc.Process(ctx, event)
}

// ForwarderHandler adapts the webhook forwarder to SNS-triggered invocations.
type ForwarderHandler struct {
	svc        service.ForwarderService
	loadConfig func() (config.ForwarderConfig, error)
	logger     *slog.Logger
}

// NewForwarderHandler reads its configuration on every invocation.
func NewForwarderHandler(svc service.ForwarderService, logger *slog.Logger) *ForwarderHandler {
	return &ForwarderHandler{svc: svc, loadConfig: config.LoadForwarderConfig, logger: logger}
}

// Handle forwards every record of the SNS event. Only a missing webhook URL fails the invocation.
func (h *ForwarderHandler) Handle(ctx context.Context, event events.SNSEvent) (model.Response, error) {
	cfg, err := h.loadConfig()
	if err != nil {
		h.logger.Error("Forwarder misconfigured", slog.Any("error", err))
		return model.Response{}, err
	}

	records := make([]model.Delivery, 0, len(event.Records))
	for _, r := range event.Records {
		records = append(records, model.Delivery{Subject: r.SNS.Subject, Message: r.SNS.Message})
	}

	h.logger.Info("Notification batch received",
		slog.String("request_id", requestID(ctx)),
		slog.Int("records", len(records)))
	resp, _ := h.svc.Forward(ctx, cfg.WebhookURL, records)
	return resp, nil
}

// requestID prefers the Lambda request id, then the HTTP one, then a fresh uuid.
func requestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
