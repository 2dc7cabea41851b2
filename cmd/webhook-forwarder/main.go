package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/samims/pipenotify/internal/handler"
	"github.com/samims/pipenotify/internal/logger"
	"github.com/samims/pipenotify/internal/service"
	"github.com/samims/pipenotify/internal/slack"
	"github.com/samims/pipenotify/pkg/tracing"
)

const serviceName = "webhook-forwarder"

func main() {
	l := logger.NewLogger()
	slog.SetDefault(l)

	tracerShutdown, err := tracing.SetupTracing(context.Background(), serviceName, l)
	if err != nil {
		l.Error("Failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}

	// SLACK_WEBHOOK_URL is read per invocation, not here.
	forwarder := service.NewForwarderService(slack.NewWebhookClient(nil, l), l)
	h := handler.NewForwarderHandler(forwarder, l)

	lambda.StartWithOptions(h.Handle, lambda.WithEnableSIGTERM(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			l.Error("Failed to flush traces", slog.Any("error", err))
		}
	}))
}
