package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/samims/pipenotify/internal/app"
	"github.com/samims/pipenotify/internal/config"
	"github.com/samims/pipenotify/internal/handler"
	"github.com/samims/pipenotify/internal/kafka"
	"github.com/samims/pipenotify/internal/logger"
	"github.com/samims/pipenotify/internal/metrics"
	"github.com/samims/pipenotify/internal/router"
	"github.com/samims/pipenotify/internal/service"
	"github.com/samims/pipenotify/internal/slack"
	"github.com/samims/pipenotify/pkg/tracing"
)

const serviceName = "notifyd"

func main() {
	l := logger.NewLogger()
	slog.SetDefault(l)

	if err := godotenv.Load(); err != nil {
		l.Debug("No .env file loaded", slog.Any("error", err))
	}

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerShutdown, err := tracing.SetupTracing(ctx, serviceName, l)
	if err != nil {
		l.Error("Failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := tracerShutdown(context.Background()); err != nil {
			l.Error("Failed to flush traces", slog.Any("error", err))
		}
	}()

	relay, err := app.NewRelay(ctx, l)
	if err != nil {
		l.Error("Failed to build approval relay", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := relay.Close(); err != nil {
			l.Error("Failed to close publisher", slog.Any("error", err))
		}
	}()

	forwarder := service.NewForwarderService(slack.NewWebhookClient(nil, l), l)
	approvalHandler := handler.NewApprovalHandler(relay.Service, l)
	forwarderHandler := handler.NewForwarderHandler(forwarder, l)

	healthSvc := service.NewHealthService(map[string]service.Check{
		"webhook_config": func(context.Context) error {
			_, err := config.LoadForwarderConfig()
			return err
		},
	}, l)

	srvCfg := config.LoadServerConfig()
	server := &http.Server{
		Addr: ":" + srvCfg.Port,
		Handler: otelhttp.NewHandler(router.NewRouter(
			handler.NewInvokeHandler(approvalHandler, forwarderHandler, l),
			handler.NewHealthHandler(healthSvc),
		), serviceName),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info("Starting HTTP server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if consumer := newConsumer(forwarder, l); consumer != nil {
		g.Go(func() error {
			err := consumer.Start(gctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		l.Error("notifyd stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	l.Info("notifyd shut down gracefully")
}

// newConsumer returns nil when kafka or the webhook is not configured.
func newConsumer(forwarder service.ForwarderService, l *slog.Logger) *kafka.Consumer {
	kcfg, err := config.LoadKafkaConfig()
	if err != nil {
		l.Info("Kafka consumer disabled", slog.Any("reason", err))
		return nil
	}
	fcfg, err := config.LoadForwarderConfig()
	if err != nil {
		l.Warn("Kafka consumer disabled", slog.Any("reason", err))
		return nil
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = kcfg.ClientID + "-consumer"
	saramaCfg.Version = sarama.V2_1_0_0
	saramaCfg.Consumer.Return.Errors = true
	group, err := sarama.NewConsumerGroup(kcfg.Brokers, kcfg.ConsumerGroup, saramaCfg)
	if err != nil {
		l.Error("Failed to create Kafka consumer group", slog.Any("error", err))
		return nil
	}
	return kafka.NewKafkaConsumer(kcfg.Topic, fcfg.WebhookURL, group, forwarder, l)
}
