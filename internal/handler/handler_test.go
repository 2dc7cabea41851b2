package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/samims/pipenotify/internal/config"
	appErr "github.com/samims/pipenotify/internal/errors"
	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/internal/notify"
	"github.com/samims/pipenotify/internal/pipeline"
	"github.com/samims/pipenotify/internal/service"
	"github.com/samims/pipenotify/internal/slack"
)

func snsEvent(records ...events.SNSEntity) events.SNSEvent {
	ev := events.SNSEvent{}
	for _, r := range records {
		ev.Records = append(ev.Records, events.SNSEventRecord{SNS: r})
	}
	return ev
}

func TestForwarderHandlerMissingWebhookAbortsBeforeDelivery(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "")
	poster := slack.NewMockPoster(t)
	h := NewForwarderHandler(service.NewForwarderService(poster, slog.Default()), slog.Default())

	_, err := h.Handle(context.Background(), snsEvent(events.SNSEntity{Message: "build failed", Subject: "Build Alert"}))

	require.Error(t, err)
	assert.True(t, appErr.IsMissingConfig(err))
	poster.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}

func TestForwarderHandlerForwardsEveryRecord(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/X")
	poster := slack.NewMockPoster(t)
	poster.On("Post", mock.Anything, "https://hooks.slack.com/services/T/B/X", model.NewChatPayload("Build Alert", "build failed")).
		Return(appErr.Wrap(appErr.ErrDelivery, "webhook returned 500")).Once()
	poster.On("Post", mock.Anything, "https://hooks.slack.com/services/T/B/X", model.NewChatPayload(model.DefaultSubject, "deploy done")).
		Return(nil).Once()
	h := NewForwarderHandler(service.NewForwarderService(poster, slog.Default()), slog.Default())

	resp, err := h.Handle(context.Background(), snsEvent(
		events.SNSEntity{Message: "build failed", Subject: "Build Alert"},
		events.SNSEntity{Message: "deploy done"},
	))

	require.NoError(t, err)
	assert.Equal(t, model.OK(model.ForwarderResponseBody), resp)
}

func TestForwarderHandlerUsesInjectedConfig(t *testing.T) {
	fwd := service.NewMockForwarderService(t)
	fwd.On("Forward", mock.Anything, "https://chat.example/hook", []model.Delivery{{Subject: "s", Message: "m"}}).
		Return(model.OK(model.ForwarderResponseBody), service.ForwardResult{Attempted: 1, Sent: 1})

	h := &ForwarderHandler{
		svc:        fwd,
		loadConfig: func() (config.ForwarderConfig, error) { return config.ForwarderConfig{WebhookURL: "https://chat.example/hook"}, nil },
		logger:     slog.Default(),
	}
	_, err := h.Handle(context.Background(), snsEvent(events.SNSEntity{Subject: "s", Message: "m"}))
	require.NoError(t, err)
}

func TestApprovalHandlerExample(t *testing.T) {
	orch := pipeline.NewMockOrchestrator(t)
	pub := notify.NewMockPublisher(t)
	orch.On("GetPipelineExecution", mock.Anything, "checkout-svc", "ex-1").
		Return(model.PipelineExecution{Status: "InProgress"}, nil)
	orch.On("GetPipelineState", mock.Anything, "checkout-svc").
		Return([]model.StageState{{StageName: "Deploy-Approval", Status: model.StageStatusInProgress}}, nil)
	pub.On("Publish", mock.Anything, "arn:aws:sns:us-east-1:1:approvals",
		mock.MatchedBy(func(msg string) bool { return bytes.Contains([]byte(msg), []byte("ex-1")) }),
		"Pipeline Approval Required: checkout-svc").
		Return(nil).Once()

	svc := service.NewApprovalService(orch, pub, "arn:aws:sns:us-east-1:1:approvals", slog.Default())
	h := NewApprovalHandler(svc, slog.Default())

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-1"})
	resp, err := h.Handle(ctx, model.PipelineEvent{Detail: model.PipelineEventDetail{
		Pipeline: "checkout-svc", ExecutionID: "ex-1", State: "STARTED",
	}})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "req-1", requestID(ctx))
}

func TestRequestIDFallsBackToUUID(t *testing.T) {
	id := requestID(context.Background())
	assert.Len(t, id, 36)
}

func TestInvokeHandler(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "")
	orch := pipeline.NewMockOrchestrator(t)
	approval := NewApprovalHandler(service.NewApprovalService(orch, notify.NewMockPublisher(t), "", slog.Default()), slog.Default())
	forwarder := NewForwarderHandler(service.NewForwarderService(slack.NewMockPoster(t), slog.Default()), slog.Default())
	h := NewInvokeHandler(approval, forwarder, slog.Default())

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ApprovalRelay(rec, httptest.NewRequest(http.MethodPost, "/invoke/approval-relay", bytes.NewBufferString("{")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing required field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		body := `{"detail":{"pipeline":"checkout-svc","state":"STARTED"}}`
		h.ApprovalRelay(rec, httptest.NewRequest(http.MethodPost, "/invoke/approval-relay", bytes.NewBufferString(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "execution-id")
	})

	t.Run("no stage in progress", func(t *testing.T) {
		orch.On("GetPipelineExecution", mock.Anything, "checkout-svc", "ex-2").
			Return(model.PipelineExecution{}, nil).Once()
		orch.On("GetPipelineState", mock.Anything, "checkout-svc").
			Return([]model.StageState{{StageName: "Source", Status: "Succeeded"}}, nil).Once()

		rec := httptest.NewRecorder()
		body := `{"detail":{"pipeline":"checkout-svc","execution-id":"ex-2","state":"STARTED"}}`
		h.ApprovalRelay(rec, httptest.NewRequest(http.MethodPost, "/invoke/approval-relay", bytes.NewBufferString(body)))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp model.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.RelayResponseBody, resp.Body)
	})

	t.Run("forwarder without webhook", func(t *testing.T) {
		rec := httptest.NewRecorder()
		body := `{"Records":[{"Sns":{"Message":"build failed","Subject":"Build Alert"}}]}`
		h.WebhookForwarder(rec, httptest.NewRequest(http.MethodPost, "/invoke/webhook-forwarder", bytes.NewBufferString(body)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	failing := service.NewHealthService(map[string]service.Check{
		"webhook_config": func(context.Context) error { return appErr.ErrMissingConfig },
	}, slog.Default())
	h := NewHealthHandler(failing)

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "webhook_config")
}
