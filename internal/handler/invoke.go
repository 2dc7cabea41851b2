package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	appErr "github.com/samims/pipenotify/internal/errors"
	"github.com/samims/pipenotify/internal/model"
)

// InvokeHandler exposes the Lambda handlers over HTTP for local dispatch.
type InvokeHandler struct {
	approval  *ApprovalHandler
	forwarder *ForwarderHandler
	logger    *slog.Logger
}

func NewInvokeHandler(approval *ApprovalHandler, forwarder *ForwarderHandler, logger *slog.Logger) *InvokeHandler {
	return &InvokeHandler{approval: approval, forwarder: forwarder, logger: logger}
}

func (h *InvokeHandler) ApprovalRelay(w http.ResponseWriter, r *http.Request) {
	var event model.PipelineEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.Warn("Invalid request body for approval relay", slog.Any("error", err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.approval.Handle(r.Context(), event)
	h.respond(w, resp, err)
}

func (h *InvokeHandler) WebhookForwarder(w http.ResponseWriter, r *http.Request) {
	var event events.SNSEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.Warn("Invalid request body for webhook forwarder", slog.Any("error", err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.forwarder.Handle(r.Context(), event)
	h.respond(w, resp, err)
}

func (h *InvokeHandler) respond(w http.ResponseWriter, resp model.Response, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if appErr.IsInvalidEvent(err) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	json.NewEncoder(w).Encode(resp)
}
