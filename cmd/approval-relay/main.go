package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/samims/pipenotify/internal/app"
	"github.com/samims/pipenotify/internal/handler"
	"github.com/samims/pipenotify/internal/logger"
	"github.com/samims/pipenotify/pkg/tracing"
)

const serviceName = "approval-relay"

func main() {
	l := logger.NewLogger()
	slog.SetDefault(l)
	ctx := context.Background()

	tracerShutdown, err := tracing.SetupTracing(ctx, serviceName, l)
	if err != nil {
		l.Error("Failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}

	relay, err := app.NewRelay(ctx, l)
	if err != nil {
		l.Error("Failed to build approval relay", slog.Any("error", err))
		os.Exit(1)
	}

	h := handler.NewApprovalHandler(relay.Service, l)
	lambda.StartWithOptions(h.Handle, lambda.WithEnableSIGTERM(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			l.Error("Failed to flush traces", slog.Any("error", err))
		}
		if err := relay.Close(); err != nil {
			l.Error("Failed to close publisher", slog.Any("error", err))
		}
	}))
}
