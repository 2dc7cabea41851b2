package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	appErr "github.com/samims/pipenotify/internal/errors"
	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/pkg/tracing"
)

const userAgent = "pipenotify/1.0"

// Poster delivers a chat payload to an incoming-webhook URL.
type Poster interface {
	Post(ctx context.Context, webhookURL string, payload model.ChatPayload) error
}

type webhookClient struct {
	client *http.Client
	log    *slog.Logger
	tracer *tracing.Tracer
}

// NewWebhookClient builds a Poster. A nil client means http.DefaultClient;
// no timeout is set beyond the caller's context deadline.
func NewWebhookClient(client *http.Client, logger *slog.Logger) Poster {
	if client == nil {
		client = http.DefaultClient
	}
	return &webhookClient{
		client: client,
		log:    logger.With("layer", "slack", "component", "webhookClient"),
		tracer: tracing.Named("slack-webhook"),
	}
}

func (c *webhookClient) Post(ctx context.Context, webhookURL string, payload model.ChatPayload) error {
	ctx, span := c.tracer.StartClientSpan(ctx, "WebhookPost")
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		c.tracer.RecordError(span, err)
		return appErr.WrapCause(appErr.ErrDelivery, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error embeds the full URL, including the token
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		c.tracer.RecordError(span, err)
		return appErr.WrapCause(appErr.ErrDelivery, err, "post to %s", redact(webhookURL))
	}
	defer resp.Body.Close()
	c.tracer.AddHTTPClientAttributes(span, http.MethodPost, req.URL.Host, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		err := appErr.Wrap(appErr.ErrDelivery, "webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
		c.tracer.RecordError(span, err)
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// redact keeps the host of a webhook URL; the path carries the secret token.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<webhook>"
	}
	return u.Scheme + "://" + u.Host + "/..."
}
