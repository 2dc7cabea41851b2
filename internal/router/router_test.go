package router

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/samims/pipenotify/internal/handler"
	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/internal/notify"
	"github.com/samims/pipenotify/internal/pipeline"
	"github.com/samims/pipenotify/internal/service"
)

func newTestRouter(t *testing.T, forwarder service.ForwarderService, ready bool) http.Handler {
	t.Helper()
	l := slog.Default()
	approval := service.NewApprovalService(pipeline.NewMockOrchestrator(t), notify.NewMockPublisher(t), "", l)
	health := service.NewHealthService(map[string]service.Check{
		"webhook_config": func(context.Context) error {
			if ready {
				return nil
			}
			return errors.New("not configured")
		},
	}, l)

	return NewRouter(
		handler.NewInvokeHandler(handler.NewApprovalHandler(approval, l), handler.NewForwarderHandler(forwarder, l), l),
		handler.NewHealthHandler(health),
	)
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t, service.NewMockForwarderService(t), false)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"liveness", http.MethodGet, "/healthz", http.StatusOK},
		{"readiness without webhook", http.MethodGet, "/readyz", http.StatusServiceUnavailable},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"invoke requires POST", http.MethodGet, "/invoke/approval-relay", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestInvokeWebhookForwarderRoute(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/X")
	forwarder := service.NewMockForwarderService(t)
	forwarder.On("Forward", mock.Anything, "https://hooks.slack.com/services/T/B/X",
		[]model.Delivery{{Subject: "Build Alert", Message: "build failed"}}).
		Return(model.OK(model.ForwarderResponseBody), service.ForwardResult{Attempted: 1, Sent: 1}).Once()
	r := newTestRouter(t, forwarder, true)

	body := `{"Records":[{"Sns":{"Subject":"Build Alert","Message":"build failed"}}]}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/invoke/webhook-forwarder", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), model.ForwarderResponseBody)
}
